// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

package pprof_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/teal-finance/r85/pprof"
)

func TestNewServer(t *testing.T) {
	t.Parallel()

	if s := pprof.NewServer(0); s != nil {
		t.Error("port 0 must disable the PProf server")
	}

	s := pprof.NewServer(6063)
	if s == nil || s.Addr != "localhost:6063" {
		t.Fatalf("NewServer(6063) = %+v", s)
	}
}

func TestHandler(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	pprof.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "goroutine") {
		t.Error("index page does not list the goroutine profile")
	}
}

func TestProbeCPU(t *testing.T) {
	dir := t.TempDir()

	pprof.ProbeCPU(dir).Stop()

	info, err := os.Stat(filepath.Join(dir, "cpu.pprof"))
	if err != nil {
		t.Fatalf("Stop() did not write the profile: %v", err)
	}
	if info.Size() == 0 {
		t.Error("empty cpu.pprof")
	}
}
