// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

package r85

import (
	"errors"
	"io"
)

// EncoderOption customizes the stream encoder.
type EncoderOption func(*encoder)

// WithWrap inserts a line feed every n characters
// and after the last line when it is not complete.
// n <= 0 disables the wrapping (default).
func WithWrap(n int) EncoderOption {
	return func(e *encoder) {
		if n > 0 {
			e.wrap = n
		}
	}
}

// DecoderOption customizes the stream decoder.
type DecoderOption func(*decoder)

// WithLineBreaks skips CR and LF characters as produced by WithWrap.
// Error offsets then count the alphabet characters only.
func WithLineBreaks() DecoderOption {
	return func(d *decoder) { d.skipLineBreaks = true }
}

// NewEncoder returns a stream encoder: data written to the returned writer
// is encoded and then written to w. Groups are 4 bytes long,
// the caller must Close the encoder to flush the trailing partial group.
// The output is identical to EncodeToBytes of the whole input.
func (c *Codec) NewEncoder(w io.Writer, opts ...EncoderOption) io.WriteCloser {
	e := &encoder{c: c, w: w}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type encoder struct {
	err  error
	w    io.Writer
	c    *Codec
	buf  [4]byte // partial group waiting for more bytes
	nbuf int
	out  [1280]byte
	wrap int // line length, zero means no wrap
	col  int // characters written on the current line
}

func (e *encoder) Write(p []byte) (n int, err error) {
	if e.err != nil {
		return 0, e.err
	}

	// complete the partial group
	if e.nbuf > 0 {
		var i int
		for i = 0; i < len(p) && e.nbuf < 4; i++ {
			e.buf[e.nbuf] = p[i]
			e.nbuf++
		}
		n += i
		p = p[i:]
		if e.nbuf < 4 {
			return n, nil
		}
		nout := e.c.Encode(e.out[:], e.buf[:])
		if e.err = e.emit(e.out[:nout]); e.err != nil {
			return n, e.err
		}
		e.nbuf = 0
	}

	// whole groups
	for len(p) >= 4 {
		nn := len(e.out) / 5 * 4
		if nn > len(p) {
			nn = len(p)
		}
		nn -= nn % 4
		nout := e.c.Encode(e.out[:], p[:nn])
		if e.err = e.emit(e.out[:nout]); e.err != nil {
			return n, e.err
		}
		n += nn
		p = p[nn:]
	}

	e.nbuf = copy(e.buf[:], p)
	n += len(p)
	return n, nil
}

// Close flushes the pending bytes and terminates the last line.
func (e *encoder) Close() error {
	if e.err == nil && e.nbuf > 0 {
		nout := e.c.Encode(e.out[:], e.buf[:e.nbuf])
		e.nbuf = 0
		e.err = e.emit(e.out[:nout])
	}

	if e.err == nil && e.col > 0 {
		e.col = 0
		_, e.err = e.w.Write(lineFeed)
	}

	return e.err
}

var lineFeed = []byte{'\n'}

func (e *encoder) emit(p []byte) error {
	if e.wrap == 0 {
		_, err := e.w.Write(p)
		return err
	}

	for len(p) > 0 {
		space := e.wrap - e.col
		if len(p) < space {
			_, err := e.w.Write(p)
			e.col += len(p)
			return err
		}

		if _, err := e.w.Write(p[:space]); err != nil {
			return err
		}
		if _, err := e.w.Write(lineFeed); err != nil {
			return err
		}
		e.col = 0
		p = p[space:]
	}

	return nil
}

// NewDecoder returns a stream decoder reading the encoded characters from r.
// A partial group is kept until the end of r,
// where the same rules as DecodeBytes apply.
func (c *Codec) NewDecoder(r io.Reader, opts ...DecoderOption) io.Reader {
	d := &decoder{c: c, r: r}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type decoder struct {
	err            error
	readErr        error
	r              io.Reader
	c              *Codec
	offset         int64      // number of characters decoded before buf[0]
	buf            [1280]byte // leftover input
	nbuf           int
	out            []byte // leftover decoded output
	outbuf         [1024]byte
	skipLineBreaks bool
}

func (d *decoder) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if d.err != nil {
		return 0, d.err
	}

	for {
		// leftover output from the last decode
		if len(d.out) > 0 {
			n = copy(p, d.out)
			d.out = d.out[n:]
			return n, nil
		}

		// only the end of input flushes the trailing group
		if d.readErr != nil && !errors.Is(d.readErr, io.EOF) {
			d.err = d.readErr
			return 0, d.err
		}

		eof := d.readErr != nil
		if d.nbuf >= 5 || (eof && d.nbuf > 0) {
			size := d.nbuf - d.nbuf%5
			if eof {
				if d.nbuf%5 == 1 {
					d.err = &LengthError{Length: d.offset + int64(d.nbuf)}
					return 0, d.err
				}
				size = d.nbuf
			}

			var ndst int
			ndst, d.err = d.c.decode(d.outbuf[:], d.buf[:size], d.offset)
			if d.err != nil {
				return 0, d.err
			}

			d.out = d.outbuf[:ndst]
			d.offset += int64(size)
			d.nbuf = copy(d.buf[:], d.buf[size:d.nbuf])
			continue
		}

		if eof {
			d.err = d.readErr
			return 0, d.err
		}

		var nn int
		nn, d.readErr = d.r.Read(d.buf[d.nbuf:])
		if d.skipLineBreaks {
			nn = dropLineBreaks(d.buf[d.nbuf : d.nbuf+nn])
		}
		d.nbuf += nn
	}
}

// dropLineBreaks removes CR and LF in place and returns the new length.
func dropLineBreaks(b []byte) int {
	n := 0
	for _, c := range b {
		if c != '\r' && c != '\n' {
			b[n] = c
			n++
		}
	}
	return n
}
