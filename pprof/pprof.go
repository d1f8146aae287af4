// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

// Package pprof serves the /debug/pprof endpoints and probes the CPU.
package pprof

import (
	"net/http"
	"net/http/pprof"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/profile"
	"github.com/teal-finance/emo"
)

var log = emo.NewZone("pprof")

// ProbeCPU is used like the following:
//
//	defer pprof.ProbeCPU(".").Stop()
//
// When the caller reaches its function end,
// the defer executes Stop() that writes the file "cpu.pprof" in dir.
// To visualize "cpu.pprof" use the pprof tool:
//
//	go run github.com/google/pprof@latest -http=: cpu.pprof
func ProbeCPU(dir string) interface{ Stop() } {
	log.Info("Probing CPU. To visualize the profile: pprof -http=: " + dir + "/cpu.pprof")
	return profile.Start(profile.CPUProfile, profile.ProfilePath(dir), profile.NoShutdownHook)
}

// NewServer returns the PProf server listening on localhost only.
// It returns nil when port is zero.
// Endpoints usage example:
//
//	curl http://localhost:6063/debug/pprof/allocs > allocs.pprof
//	pprof -http=: allocs.pprof
func NewServer(port int) *http.Server {
	if port == 0 {
		return nil // Disable PProf endpoints /debug/pprof/*
	}

	addr := "localhost:" + strconv.Itoa(port)
	log.Info("Enable PProf endpoints: http://" + addr + "/debug/pprof")

	return &http.Server{
		Addr:              addr,
		Handler:           Handler(),
		ReadHeaderTimeout: time.Second,
	}
}

// Handler serves the /debug/pprof/* endpoints.
func Handler() http.Handler {
	r := chi.NewRouter()
	r.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	r.HandleFunc("/debug/pprof/profile", pprof.Profile)
	r.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	r.HandleFunc("/debug/pprof/trace", pprof.Trace)
	r.NotFound(pprof.Index) // also serves /debug/pprof/{heap,goroutine,block...}
	return r
}
