// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

// Package security prevents log injection and keeps the keys out of the logs.
package security

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/minio/highwayhash"
	"github.com/teal-finance/emo"

	"github.com/teal-finance/r85/reserr"
)

var log = emo.NewZone("security")

// KeyHeader carries the key of the HTTP requests.
// Its value must never be logged, use KeyID instead.
const KeyHeader = "X-R85-Key"

// hashKey is random at every start: fingerprints are only comparable
// within the same process, they cannot be reversed from the logs.
var hashKey = randomKey()

func randomKey() []byte {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Panic("cannot initialize the HighwayHash key: ", err)
	}
	return key
}

// Fingerprint hashes the key with HighwayHash-128.
// The r85 service indexes its codecs by fingerprint, never by key.
func Fingerprint(key []byte) [highwayhash.Size128]byte {
	return highwayhash.Sum128(key, hashKey)
}

// KeyID is a short printable fingerprint to identify a key in the logs.
// The empty key is "none".
func KeyID(key []byte) string {
	if len(key) == 0 {
		return "none"
	}
	sum := highwayhash.Sum64(key, hashKey)
	b := []byte{byte(sum >> 56), byte(sum >> 48), byte(sum >> 40), byte(sum >> 32)}
	return hex.EncodeToString(b)
}

// PrintableRune rejects the control codes (except space)
// and the invalid code points.
func PrintableRune(r rune) bool {
	switch {
	case r < 32, r == 127:
		return false
	case r == utf8.RuneError:
		return false
	case r > utf8.MaxRune, 0xD800 <= r && r <= 0xDFFF:
		return false
	}
	return true
}

// Printable returns the position of the first character
// that may inject a fake line in the logs, or -1 if s is safe.
func Printable(s string) int {
	for p := 0; p < len(s); {
		r, size := utf8.DecodeRuneInString(s[p:])
		if !PrintableRune(r) {
			return p
		}
		p += size
	}
	return -1
}

// Sanitize replaces the tabulations by spaces
// and the other unprintable characters by the replacement character.
func Sanitize(s string) string {
	if Printable(s) < 0 && !strings.ContainsRune(s, '\t') {
		return s
	}

	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case r == utf8.RuneError:
			return '�'
		case unicode.IsPrint(r):
			return r
		default:
			return '�'
		}
	}, s)
}

// RejectUnprintableURI is a middleware rejecting HTTP requests having
// a Carriage Return "\r", a Line Feed "\n" or any other unprintable character
// within the URI to prevent log injection.
func RejectUnprintableURI(resErr reserr.Writer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log.Info("Middleware RejectUnprintableURI: reject URI having line breaks or unprintable characters")

		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				if p := Printable(r.RequestURI); p >= 0 {
					resErr.Write(w, r, http.StatusBadRequest, "Invalid URI with non-printable symbol")
					log.Warn("reject non-printable URI: ", Sanitize(r.RequestURI))
					return
				}

				next.ServeHTTP(w, r)
			})
	}
}
