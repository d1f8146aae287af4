// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

package security_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/teal-finance/r85/reserr"
	"github.com/teal-finance/r85/security"
)

func TestPrintable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		s    string
		want int
	}{
		{"valid", "/encode?zip=.gz", -1},
		{"utf8", "/café", -1},
		{"line feed", "/a\nb", 2},
		{"carriage return", "\r", 0},
		{"tabulation", "a\tb", 1},
		{"delete", "ab\x7f", 2},
		{"invalid utf8", "ab\xff", 2},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := security.Printable(c.s); got != c.want {
				t.Errorf("Printable(%q) = %d, want %d", c.s, got, c.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	if got := security.Sanitize("a\tb\nc"); got != "a b�c" {
		t.Errorf("Sanitize() = %q", got)
	}
	if got := security.Sanitize("/decode"); got != "/decode" {
		t.Errorf("Sanitize() = %q", got)
	}
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	a1 := security.Fingerprint([]byte("s3cret"))
	a2 := security.Fingerprint([]byte("s3cret"))
	b := security.Fingerprint([]byte("s3cre7"))

	if a1 != a2 {
		t.Error("Fingerprint is not deterministic")
	}
	if a1 == b {
		t.Error("Fingerprint collision")
	}

	if id := security.KeyID(nil); id != "none" {
		t.Errorf("KeyID(nil) = %q", id)
	}
	if id := security.KeyID([]byte("s3cret")); len(id) != 8 || id == "s3cret" {
		t.Errorf("KeyID() = %q", id)
	}
}

func TestRejectUnprintableURI(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := security.RejectUnprintableURI(reserr.Writer(""))(ok)

	r := httptest.NewRequest(http.MethodGet, "/version", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}

	r.RequestURI = "/version\r\nfake log line"
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
