// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/teal-finance/r85/compression"
	"github.com/teal-finance/r85/version"
)

const (
	encodeMethod = "encode"
	decodeMethod = "decode"

	// Ext is appended to the encoded file name.
	Ext = ".r85"
)

const usageText = `Usage: r85 [OPTIONS]... [FILE]
Encode or decode FILE or stdin to stdout by default.
Options:
  -d, --decode       decodes FILE (default if file has .r85 extension)
  -e, --encode       encodes FILE (default if file doesn't have .r85 extension)
  -o, --out=FILE     writes to FILE
  -O                 writes to FILE.r85 when encoding, FILE without .r85 when decoding
  -k, --key=KEY      a key to permute the alphabet (default $R85_KEY)
  -K                 same as -k, but read the key from the first line of stdin
  -f, --force        overwrites output FILE (--out or -o) if it exists
  -z, --zip=EXT      compresses before encoding, decompresses after decoding
                     EXT is one of .br .gz .s2 .zst (and .bz2 to decode)
  -l, --level=N      compression level (default 5)
  -w, --wrap=N       wraps the encoded text every N characters (0 = no wrap)
  -v, --verbose      logs sizes and durations on stderr
  -version           prints version and exits
  -h, --help         prints this help

With no [FILE], reads stdin.
With no [FILE] and with -K, the key is the first line from stdin.
With no --out=FILE (or -o FILE), writes to stdout.
`

var errHelp = flag.ErrHelp

// onceString rejects a second value, even when given by another flag name.
type onceString struct {
	name  string
	value string
	set   bool
}

func (s *onceString) String() string { return s.value }

func (s *onceString) Set(v string) error {
	if s.set {
		return fmt.Errorf("please specify %s only once", s.name)
	}
	s.value = v
	s.set = true
	return nil
}

type options struct {
	method    string
	inFile    string
	outFile   string
	deriveOut bool
	key       string
	keySet    bool
	keyStdin  bool
	force     bool
	zip       string
	level     int
	wrap      int
	verbose   bool
}

// parseArgs parses the command line, args excludes the program name.
func parseArgs(args []string, stderr io.Writer) (options, error) {
	var (
		o              options
		encode, decode bool
		out            = onceString{name: "--out (or -o)"}
		key            = onceString{name: "--key (or -k or -K)"}
	)

	fs := flag.NewFlagSet("r85", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usageText) }

	for _, name := range []string{"e", "encode"} {
		fs.BoolVar(&encode, name, false, "encode")
	}
	for _, name := range []string{"d", "decode"} {
		fs.BoolVar(&decode, name, false, "decode")
	}
	for _, name := range []string{"f", "force"} {
		fs.BoolVar(&o.force, name, false, "overwrite")
	}
	for _, name := range []string{"v", "verbose"} {
		fs.BoolVar(&o.verbose, name, false, "verbose")
	}
	for _, name := range []string{"z", "zip"} {
		fs.StringVar(&o.zip, name, "", "compression")
	}
	for _, name := range []string{"l", "level"} {
		fs.IntVar(&o.level, name, compression.DefaultLevel, "compression level")
	}
	for _, name := range []string{"w", "wrap"} {
		fs.IntVar(&o.wrap, name, 0, "wrap")
	}
	fs.Var(&out, "o", "output file")
	fs.Var(&out, "out", "output file")
	fs.Var(&key, "k", "key")
	fs.Var(&key, "key", "key")
	fs.BoolVar(&o.deriveOut, "O", false, "derive output file name")
	fs.BoolVar(&o.keyStdin, "K", false, "read key from stdin")
	version.SetFlag(fs, "r85")

	if err := fs.Parse(args); err != nil {
		return o, err
	}

	// options may also follow FILE
	var files []string
	for fs.NArg() > 0 {
		files = append(files, fs.Arg(0))
		if err := fs.Parse(fs.Args()[1:]); err != nil {
			return o, err
		}
	}

	if encode && decode {
		return o, errors.New("please specify either --encode (or -e) or --decode (or -d), not both")
	}
	if o.keyStdin && key.set {
		return o, errors.New("please specify --key (or -k or -K) only once")
	}
	if out.set && o.deriveOut {
		return o, errors.New("please specify --out (or -o or -O) only once")
	}
	if len(files) > 1 {
		return o, errors.New("please specify FILE only once")
	}
	if o.wrap < 0 {
		return o, fmt.Errorf("--wrap=%d must be positive or zero", o.wrap)
	}

	if len(files) == 1 {
		o.inFile = files[0]
	}
	o.outFile = out.value
	o.key = key.value
	o.keySet = key.set

	if o.zip != "" {
		o.zip = compression.Normalize(o.zip)
	}

	switch {
	case encode:
		o.method = encodeMethod
	case decode:
		o.method = decodeMethod
	case hasExt(o.inFile):
		o.method = decodeMethod
	default:
		o.method = encodeMethod
	}

	if o.deriveOut {
		if o.inFile == "" || (o.method == decodeMethod && !hasExt(o.inFile)) {
			return o, errors.New("please specify the output filename with --out=FILE or -o FILE")
		}
		if o.method == encodeMethod {
			o.outFile = o.inFile + Ext
		} else {
			o.outFile = o.inFile[:len(o.inFile)-len(Ext)]
		}
	}

	return o, nil
}

func hasExt(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), Ext)
}
