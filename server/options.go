// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

package server

import (
	"github.com/teal-finance/r85/reserr"
)

// Option configures the Server.
type Option func(*Server)

// WithDev relaxes the rate limiter and enables the CORS debug logs.
func WithDev(enable ...bool) Option {
	devMode := true
	if len(enable) > 0 {
		devMode = enable[0]

		if len(enable) >= 2 {
			log.Panic("server.WithDev() must be called with zero or one argument")
		}
	}

	return func(s *Server) {
		s.devMode = devMode
	}
}

// WithProm exports the Prometheus metrics on port (0 disables)
// within the namespace derived from name.
func WithProm(port int, name string) Option {
	return func(s *Server) {
		s.expPort = port
		if name != "" {
			s.name = name
		}
	}
}

// WithPProf serves /debug/pprof on localhost:port (0 disables).
func WithPProf(port int) Option {
	return func(s *Server) {
		s.pprofPort = port
	}
}

// WithLimiter sets the rate limiter per remote IP.
// A zero maxReqBurst disables the rate limiter.
func WithLimiter(maxReqBurst, maxReqPerMinute int) Option {
	return func(s *Server) {
		s.reqBurst = maxReqBurst
		s.reqPerMinute = maxReqPerMinute
	}
}

// WithOrigins sets the CORS origins, an empty list disables CORS.
func WithOrigins(origins ...string) Option {
	return func(s *Server) {
		s.origins = origins
	}
}

// WithMaxBody limits the size of the request bodies.
func WithMaxBody(maxBytes int64) Option {
	return func(s *Server) {
		if maxBytes <= 0 {
			log.Panicf("server.WithMaxBody(%d) requires a positive size", maxBytes)
		}
		s.maxBody = maxBytes
	}
}

// WithServerHeader sets the Server HTTP header, empty means no header.
func WithServerHeader(header string) Option {
	return func(s *Server) {
		s.serverHeader = header
	}
}

// WithDocURL is included in the error responses.
func WithDocURL(docURL string) Option {
	return func(s *Server) {
		s.resErr = reserr.Writer(docURL)
	}
}

// WithCacheSize is the number of codecs kept for the recent keys.
func WithCacheSize(size int) Option {
	return func(s *Server) {
		if size <= 0 {
			log.Panicf("server.WithCacheSize(%d) requires a positive size", size)
		}
		s.cacheSize = size
	}
}

// WithReqLogs sets the request log verbosity: 0 = none, 1 = in/out lines,
// 2 = also the key identifier and the payload description.
func WithReqLogs(verbosity int) Option {
	if verbosity < 0 || verbosity > 2 {
		log.Panicf("server.WithReqLogs(verbosity=%v) accepts values [0, 1, 2] only", verbosity)
	}

	return func(s *Server) {
		s.reqLogVerbosity = verbosity
	}
}
