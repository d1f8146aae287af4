// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

// Package compression shrinks the payload before the base-85 encoding
// (encoding increases the size by 25%) and expands it after decoding.
// The algorithm is selected by its usual file extension.
package compression

import (
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/teal-finance/emo"
)

var log = emo.NewZone("compression")

const (
	BrotliExt = ".br"
	Bzip2Ext  = ".bz2"
	GZipExt   = ".gz"
	S2Ext     = ".s2" // S2 is a Snappy extension
	ZStdExt   = ".zst"
)

// DefaultLevel is a good trade-off for every supported algorithm.
const DefaultLevel = 5

// ErrUnsupportedExt is returned for an unknown or empty extension.
var ErrUnsupportedExt = errors.New("unsupported compression extension")

func SupportedEncoders() []string { return []string{BrotliExt, GZipExt, S2Ext, ZStdExt} }
func SupportedDecoders() []string { return []string{BrotliExt, GZipExt, S2Ext, ZStdExt, Bzip2Ext} }

// Normalize accepts "zst", ".ZST" or ".zst" and returns ".zst".
func Normalize(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && ext[0] != '.' {
		ext = "." + ext
	}
	return ext
}

// Compressor returns a writer compressing into w.
// The caller must Close the compressor, then close w if required.
func Compressor(w io.Writer, ext string, level int) (io.WriteCloser, error) {
	switch Normalize(ext) {
	case BrotliExt:
		return BrotliCompressor(w, level), nil
	case GZipExt:
		return GZipCompressor(w, level)
	case S2Ext:
		return S2Compressor(w, level), nil
	case ZStdExt:
		return ZStdCompressor(w, level)
	default:
		return nil, fmt.Errorf("%w %q: want one of %v", ErrUnsupportedExt, ext, SupportedEncoders())
	}
}

func BrotliCompressor(w io.Writer, level int) io.WriteCloser {
	if level < brotli.BestSpeed {
		log.Printf("Increase Brotli level=%d to BestSpeed=%d", level, brotli.BestSpeed)
		level = brotli.BestSpeed
	} else if level > brotli.BestCompression {
		log.Printf("Reduce Brotli level=%d to BestCompression=%d", level, brotli.BestCompression)
		level = brotli.BestCompression
	}
	return brotli.NewWriterLevel(w, level)
}

func GZipCompressor(w io.Writer, level int) (io.WriteCloser, error) {
	if level < gzip.StatelessCompression {
		log.Printf("Increase GZip level=%d to StatelessCompression=%d", level, gzip.StatelessCompression)
		level = gzip.StatelessCompression
	} else if level > gzip.BestCompression {
		log.Printf("Reduce GZip level=%d to BestCompression=%d", level, gzip.BestCompression)
		level = gzip.BestCompression
	}
	return gzip.NewWriterLevel(w, level)
}

// S2Compressor maps the levels 1..4 to the S2 options.
func S2Compressor(w io.Writer, level int) io.WriteCloser {
	switch level {
	case 1:
		return s2.NewWriter(w, s2.WriterUncompressed())
	case 2:
		return s2.NewWriter(w)
	case 3:
		return s2.NewWriter(w, s2.WriterBetterCompression())
	default:
		if level < 1 {
			log.Printf("Change S2 level=%d to default compression level: Fast=2", level)
			return s2.NewWriter(w)
		}
		return s2.NewWriter(w, s2.WriterBestCompression())
	}
}

func ZStdCompressor(w io.Writer, level int) (io.WriteCloser, error) {
	l := zstd.EncoderLevel(level)
	if l < zstd.SpeedFastest {
		log.Printf("Increase Zstd level=%d to SpeedFastest=%d", level, zstd.SpeedFastest)
		l = zstd.SpeedFastest
	} else if l > zstd.SpeedBestCompression {
		log.Printf("Reduce Zstd level=%d to SpeedBestCompression=%d", level, zstd.SpeedBestCompression)
		l = zstd.SpeedBestCompression
	}
	return zstd.NewWriter(w, zstd.WithEncoderLevel(l))
}

// Decompressor returns a reader expanding the data read from r.
// The caller must Close the returned reader (r is not closed).
func Decompressor(r io.Reader, ext string) (io.ReadCloser, error) {
	switch Normalize(ext) {
	case BrotliExt:
		return io.NopCloser(brotli.NewReader(r)), nil

	case GZipExt:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return zr, nil

	case S2Ext:
		return io.NopCloser(s2.NewReader(r)), nil

	case ZStdExt:
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(4))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return &zstdCloser{zr}, nil

	case Bzip2Ext:
		return io.NopCloser(bzip2.NewReader(r)), nil

	default:
		return nil, fmt.Errorf("%w %q: want one of %v", ErrUnsupportedExt, ext, SupportedDecoders())
	}
}

// zstdCloser is required because zstd.Decoder.Close() returns nothing.
type zstdCloser struct {
	*zstd.Decoder
}

func (z *zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}
