// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

package iec_test

import (
	"testing"

	"github.com/teal-finance/r85/iec"
)

func TestSize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
		{3 << 40, "3.0 TiB"},
	}

	for _, c := range cases {
		if got := iec.Size(c.n); got != c.want {
			t.Errorf("Size(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestRatio(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, out int64
		want    string
	}{
		{4, 5, "+25.0%"},
		{100, 50, "-50.0%"},
		{0, 5, "n/a"},
	}

	for _, c := range cases {
		if got := iec.Ratio(c.in, c.out); got != c.want {
			t.Errorf("Ratio(%d, %d) = %q, want %q", c.in, c.out, got, c.want)
		}
	}
}
