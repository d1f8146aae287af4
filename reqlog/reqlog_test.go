// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

package reqlog

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/teal-finance/r85/security"
)

func TestStatusRecorder(t *testing.T) {
	t.Parallel()

	h := LogDuration(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))

	if w.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", w.Code, http.StatusTeapot)
	}
}

func TestLines(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/encode", strings.NewReader("hello"))
	r.RequestURI = "/encode?zip=\n.gz"
	r.Header.Set(security.KeyHeader, "s3cret")
	r.Header.Set("User-Agent", "curl/7.81")

	in := ipMethodURL(r)
	if !strings.HasPrefix(in, "in  ") || strings.Contains(in, "\n") {
		t.Errorf("ipMethodURL() = %q", in)
	}

	out := ipMethodURLDuration(r, http.StatusOK, time.Millisecond)
	if !strings.HasPrefix(out, "out ") || !strings.Contains(out, " 200 1ms") {
		t.Errorf("ipMethodURLDuration() = %q", out)
	}

	v := info(r)
	if strings.Contains(v, "s3cret") {
		t.Errorf("info() leaks the key: %q", v)
	}
	if !strings.Contains(v, `U="curl/7.81"`) || !strings.Contains(v, "N=5") {
		t.Errorf("info() = %q", v)
	}
}
