// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

// Command r85 encodes a file (or stdin) into printable ASCII text,
// or decodes it back, optionally using a key permuting the alphabet.
//
//	r85 -k s3cret -O photo.jpg        # writes photo.jpg.r85
//	r85 -k s3cret -O photo.jpg.r85    # writes photo.jpg
//	tar c dir | r85 -z .zst -w 76 > dir.tar.zst.r85
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/teal-finance/emo"
)

var log = emo.NewZone("r85")

func main() {
	o, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, errHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "r85:", err)
		os.Exit(2)
	}

	if err := run(o, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "r85:", err)
		os.Exit(1)
	}
}
