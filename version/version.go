// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

// Package version provides the program version from the build information.
package version

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/carlmjohnson/flagx"
	"github.com/carlmjohnson/versioninfo"
)

// V is set using the following link flag `-ldflags`:
//
//	v="$(git describe --tags --always --broken)"
//	go build -ldflags="-X 'github.com/teal-finance/r85/version.V=$v'" ./cmd/r85
//
//nolint:gochecknoglobals // This is set at build time
var V string

// Version format is "Program-1.2.3".
// If the program argument is empty, the format is "v1.2.3".
// If V is empty, Version uses the main module version.
func Version(program string) string {
	version := V
	if version == "" {
		version = versioninfo.Short()
		if version == "" {
			version = "undefined-version"
		}
	}

	if program != "" {
		program += "-"
		if len(version) > 1 && version[0] == 'v' {
			version = version[1:] // Skip the prefix "v"
		}
	}

	return program + version
}

// Info computes the version and (Git) commit information.
func Info(program string) []string {
	info := make([]string, 0, 3)

	version := Version(program)
	info = append(info, version)

	short := versioninfo.Short()
	if !strings.HasSuffix(version, strings.TrimPrefix(short, "v")) {
		info = append(info, "ShortVersion: "+short)
	}

	if !versioninfo.LastCommit.IsZero() {
		ago := time.Since(versioninfo.LastCommit).Round(time.Minute)
		info = append(info, fmt.Sprint(
			"LastCommit: ", versioninfo.LastCommit.Format("2006-01-02 15:04:05"),
			" (", ago, " ago)"))
	}

	return info
}

// Print writes the version lines.
func Print(w io.Writer, program string) {
	for _, line := range Info(program) {
		fmt.Fprintln(w, line)
	}
}

// SetFlag defines the flag -version printing the version and exiting.
// fs nil means flag.CommandLine.
func SetFlag(fs *flag.FlagSet, program string) {
	f := func() error {
		Print(os.Stdout, program)
		os.Exit(0)
		return nil
	}

	flagx.BoolFunc(fs, "version", "Print version and exit", f)
}
