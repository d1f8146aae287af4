// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

package compression_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/teal-finance/r85/compression"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	input := []byte(strings.Repeat("Garçon, un café très fort ! ", 500))

	for _, ext := range compression.SupportedEncoders() {
		for _, level := range []int{-1, compression.DefaultLevel, 99} {
			var buf bytes.Buffer

			w, err := compression.Compressor(&buf, ext, level)
			if err != nil {
				t.Fatalf("Compressor(%s, %d) error = %v", ext, level, err)
			}
			if _, err = w.Write(input); err != nil {
				t.Fatalf("%s Write() error = %v", ext, err)
			}
			if err = w.Close(); err != nil {
				t.Fatalf("%s Close() error = %v", ext, err)
			}

			if level == compression.DefaultLevel && buf.Len() >= len(input) {
				t.Errorf("%s: compressed %d bytes into %d bytes", ext, len(input), buf.Len())
			}

			r, err := compression.Decompressor(&buf, ext)
			if err != nil {
				t.Fatalf("Decompressor(%s) error = %v", ext, err)
			}
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("%s ReadAll() error = %v", ext, err)
			}
			_ = r.Close()

			if !bytes.Equal(got, input) {
				t.Errorf("%s level=%d: round trip differs", ext, level)
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"zst", ".zst"},
		{".ZST", ".zst"},
		{" gz ", ".gz"},
		{"", ""},
	}

	for _, c := range cases {
		if got := compression.Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestUnsupported(t *testing.T) {
	t.Parallel()

	if _, err := compression.Compressor(io.Discard, ".bz2", 5); !errors.Is(err, compression.ErrUnsupportedExt) {
		t.Errorf("Compressor(.bz2) error = %v, want ErrUnsupportedExt", err)
	}
	if _, err := compression.Decompressor(strings.NewReader(""), ".rar"); !errors.Is(err, compression.ErrUnsupportedExt) {
		t.Errorf("Decompressor(.rar) error = %v, want ErrUnsupportedExt", err)
	}
}
