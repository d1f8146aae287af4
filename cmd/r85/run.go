// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/teal-finance/r85"
	"github.com/teal-finance/r85/compression"
	"github.com/teal-finance/r85/env"
	"github.com/teal-finance/r85/iec"
)

// run processes the input and writes the output file or stdout.
func run(o options, stdin io.Reader, stdout io.Writer) (err error) {
	if o.outFile != "" && !o.force {
		if err = checkOutFile(o.outFile); err != nil {
			return err
		}
	}

	in := bufio.NewReader(stdin)

	if o.inFile != "" {
		file, err := openInFile(o.inFile)
		if err != nil {
			return err
		}
		defer file.Close()

		if o.keyStdin {
			if o.key, err = readLine(in); err != nil {
				return err
			}
		}
		in = bufio.NewReader(file)
	} else if o.keyStdin {
		if o.key, err = readLine(in); err != nil {
			return err
		}
	}

	if !o.keySet && !o.keyStdin {
		o.key = env.Str("R85_KEY")
	}

	out := stdout
	if o.outFile != "" {
		// the output replaces the file only once the input is fully processed:
		// FILE may be both the input and the output
		var tmp *os.File
		tmp, err = createTempFile(o.outFile)
		if err != nil {
			return err
		}

		defer func() { err = commitOutFile(tmp, o.outFile, o.force, err) }()

		out = tmp
	}

	bw := bufio.NewWriter(out)

	src := &counter{r: in}
	dst := &counter{w: bw}
	start := time.Now()

	codec := r85.NewString(o.key)
	if o.method == decodeMethod {
		err = decode(codec, dst, src, o)
	} else {
		err = encode(codec, dst, src, o)
	}
	if err != nil {
		return err
	}

	if err = bw.Flush(); err != nil {
		return err
	}

	if o.verbose {
		log.Printf("%v %s => %s (%s) in %v", o.method,
			iec.Size(src.n), iec.Size(dst.n), iec.Ratio(src.n, dst.n), time.Since(start))
	}

	return nil
}

func encode(codec *r85.Codec, dst io.Writer, src io.Reader, o options) error {
	enc := codec.NewEncoder(dst, r85.WithWrap(o.wrap))

	var w io.WriteCloser = enc
	if o.zip != "" {
		zw, err := compression.Compressor(enc, o.zip, o.level)
		if err != nil {
			return err
		}
		w = zw
	}

	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if o.zip != "" {
		if err := w.Close(); err != nil {
			return fmt.Errorf("compress %s: %w", o.zip, err)
		}
	}

	return enc.Close()
}

// decode tolerates line breaks, such as the ones written by --wrap.
func decode(codec *r85.Codec, dst io.Writer, src io.Reader, o options) error {
	r := codec.NewDecoder(src, r85.WithLineBreaks())

	if o.zip != "" {
		zr, err := compression.Decompressor(r, o.zip)
		if err != nil {
			return err
		}
		defer zr.Close()
		r = zr
	}

	if _, err := io.Copy(dst, r); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	return nil
}

func checkOutFile(name string) error {
	_, err := os.Stat(name)
	switch {
	case err == nil:
		return fmt.Errorf("output FILE %s exists, please use --force (or -f) to overwrite", name)
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("output FILE %s: %w", name, err)
	}
}

func openInFile(name string) (*os.File, error) {
	file, err := os.Open(name)
	switch {
	case err == nil:
		return file, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("input FILE %s does not exist", name)
	case errors.Is(err, fs.ErrPermission):
		return nil, fmt.Errorf("permission denied to read input FILE %s", name)
	default:
		return nil, err
	}
}

// createTempFile creates the temporary output next to the final one,
// so that the rename stays within the same file system.
func createTempFile(name string) (*os.File, error) {
	dir, base := filepath.Split(name)
	if dir == "" {
		dir = "."
	}

	file, err := os.CreateTemp(dir, "."+base+".*.tmp")
	switch {
	case err == nil:
		return file, nil
	case errors.Is(err, fs.ErrPermission):
		return nil, fmt.Errorf("permission denied to write output FILE %s", name)
	default:
		return nil, fmt.Errorf("output FILE %s: %w", name, err)
	}
}

// commitOutFile renames the temporary file to name when err is nil,
// otherwise removes it. It returns the first error.
func commitOutFile(tmp *os.File, name string, force bool, err error) error {
	if e := tmp.Close(); e != nil && err == nil {
		err = e
	}

	if err == nil && !force {
		err = checkOutFile(name)
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), 0o644)
	}
	if err == nil {
		err = os.Rename(tmp.Name(), name)
	}

	if err != nil {
		_ = os.Remove(tmp.Name())
	}
	return err
}

// readLine reads the key, the line ending is dropped.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("cannot read the key from stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// counter counts the bytes passing through.
type counter struct {
	r io.Reader
	w io.Writer
	n int64
}

func (c *counter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func (c *counter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
