// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

package cors_test

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/teal-finance/r85/cors"
)

func TestInsertSchema(t *testing.T) {
	t.Parallel()

	in := []string{"localhost:8085", "https://r85.example.com", "http://x"}
	want := []string{"http://localhost:8085", "https://r85.example.com", "http://x"}

	if got := cors.InsertSchema(in); !reflect.DeepEqual(got, want) {
		t.Errorf("InsertSchema() = %v, want %v", got, want)
	}
	if in[0] != "localhost:8085" {
		t.Error("InsertSchema() must not alter its input")
	}
}

func TestHandler(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	cases := []struct {
		name    string
		origins []string
		origin  string
		allowed string
	}{
		{"one origin", []string{"localhost:3000"}, "http://localhost:3000", "http://localhost:3000"},
		{"refused", []string{"localhost:3000"}, "http://evil.example", ""},
		{"prefixes", []string{"http://a.example", "http://b.example"}, "http://b.example:8080", "http://b.example:8080"},
		{"any", []string{"*"}, "http://whatever.example", "*"},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			h := cors.Handler(c.origins, false)(ok)
			r := httptest.NewRequest(http.MethodPost, "/encode", nil)
			r.Header.Set("Origin", c.origin)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != c.allowed {
				t.Errorf("Allow-Origin = %q, want %q", got, c.allowed)
			}
		})
	}
}
