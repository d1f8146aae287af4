// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

// Package env reads the configuration from environment variables.
package env

import (
	"os"
	"strconv"
	"strings"

	"github.com/teal-finance/emo"
)

var log = emo.NewZone("env")

// Str searches the environment variable (envvar)
// and returns its value if found,
// otherwise returns the optional fallback value.
// In absence of fallback, "" is returned.
func Str(envvar string, fallback ...string) string {
	if value, ok := os.LookupEnv(envvar); ok {
		return value
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return ""
}

// Int does the same as Str but expects the value is an integer.
// Int panics if the envvar value cannot be parsed as an integer.
func Int(envvar string, fallback ...int) int {
	if str, ok := os.LookupEnv(envvar); ok && str != "" {
		integer, err := strconv.Atoi(str)
		if err != nil {
			log.Panicf("want integer but got %v=%q err: %v", envvar, str, err)
		}
		return integer
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return 0
}

// List splits the value on commas and blanks, empty items are dropped.
func List(envvar string, fallback ...string) []string {
	return SplitClean(Str(envvar, fallback...))
}

func isSeparator(c rune) bool {
	switch c {
	case ',', ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// SplitClean splits the values and trims them.
func SplitClean(values string) []string {
	return strings.FieldsFunc(values, isSeparator)
}
