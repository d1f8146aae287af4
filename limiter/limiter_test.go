// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

package limiter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/teal-finance/r85/reserr"
)

func serve(h http.Handler, remoteAddr string) int {
	r := httptest.NewRequest(http.MethodPost, "/encode", nil)
	r.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w.Code
}

func TestLimitPerVisitor(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// one request per hour: the second request would wait far longer than MaxWait
	rl := New(2, 1, false, reserr.Writer(""))
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := rl.Middleware(ctx)(ok)

	cases := []struct {
		name string
		addr string
		want int
	}{
		{"first", "192.0.2.1:1234", http.StatusNoContent},
		{"burst", "192.0.2.1:1235", http.StatusNoContent},
		{"exceeded", "192.0.2.1:1236", http.StatusTooManyRequests},
		{"other visitor", "192.0.2.2:1234", http.StatusNoContent},
		{"bad addr", "no-port", http.StatusInternalServerError},
	}

	// sequential: each case depends on the previous ones
	for _, c := range cases {
		if got := serve(h, c.addr); got != c.want {
			t.Errorf("%s: status = %d, want %d", c.name, got, c.want)
		}
	}

	if n := rl.Visitors(); n != 2 {
		t.Errorf("Visitors() = %d, want 2", n)
	}
}

func TestForget(t *testing.T) {
	t.Parallel()

	rl := New(1, 60, true, reserr.Writer(""))
	if rl.burst != 10 {
		t.Errorf("devMode burst = %d, want 10", rl.burst)
	}

	rl.getVisitor("192.0.2.1")
	rl.forget(time.Now().Add(-time.Hour))
	if n := rl.Visitors(); n != 1 {
		t.Errorf("recent visitor removed, Visitors() = %d", n)
	}

	rl.forget(time.Now().Add(time.Second))
	if n := rl.Visitors(); n != 0 {
		t.Errorf("old visitor kept, Visitors() = %d", n)
	}
}
