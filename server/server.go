// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

// Package server encodes and decodes r85 text over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/teal-finance/emo"

	"github.com/teal-finance/r85/chain"
	"github.com/teal-finance/r85/cors"
	"github.com/teal-finance/r85/limiter"
	"github.com/teal-finance/r85/metrics"
	"github.com/teal-finance/r85/pprof"
	"github.com/teal-finance/r85/reqlog"
	"github.com/teal-finance/r85/reserr"
	"github.com/teal-finance/r85/security"
	"github.com/teal-finance/r85/version"
)

var log = emo.NewZone("server")

const (
	// DefaultMaxBody is the default limit of the request body size.
	DefaultMaxBody int64 = 8 << 20

	shutdownTimeout = 5 * time.Second
)

// Routes are the endpoints of the main server.
var Routes = []string{
	"/encode",
	"/decode",
	"/api/v1/encode",
	"/api/v1/decode",
	"/version",
}

type Server struct {
	name         string
	serverHeader string
	resErr       reserr.Writer
	origins      []string

	devMode         bool
	reqLogVerbosity int
	expPort         int
	pprofPort       int
	reqBurst        int
	reqPerMinute    int
	maxBody         int64
	cacheSize       int

	metrics *metrics.Metrics
	cache   *codecCache
}

// New creates the server, the defaults are overridden by the options.
func New(opts ...Option) *Server {
	s := &Server{
		name:            "r85d",
		serverHeader:    version.Version("r85d"),
		resErr:          "",
		origins:         nil,
		devMode:         false,
		reqLogVerbosity: 1,
		expPort:         0,
		pprofPort:       0,
		reqBurst:        20,
		reqPerMinute:    80,
		maxBody:         DefaultMaxBody,
		cacheSize:       DefaultCacheSize,
		metrics:         nil,
		cache:           nil,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.expPort > 0 {
		s.metrics = metrics.New(s.name)
	}
	s.cache = newCodecCache(s.cacheSize)

	return s
}

// Handler returns the router wrapped by the middlewares.
// The background tasks of the middlewares stop when ctx is done.
func (s *Server) Handler(ctx context.Context) http.Handler {
	return s.middlewares(ctx).Then(s.router())
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Post("/encode", s.encode)
	r.Post("/decode", s.decode)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/encode", s.apiEncode)
		r.Post("/decode", s.apiDecode)
	})

	r.Get("/version", s.version)

	r.NotFound(s.resErr.InvalidPath)
	r.MethodNotAllowed(s.resErr.InvalidPath)

	return r
}

func (s *Server) middlewares(ctx context.Context) chain.Chain {
	c := chain.New(
		s.metrics.Middleware(Routes...),
		security.RejectUnprintableURI(s.resErr),
	)

	switch s.reqLogVerbosity {
	case 1:
		c = c.Append(reqlog.LogRequest, reqlog.LogDuration)
	case 2:
		c = c.Append(reqlog.LogVerbose, reqlog.LogDuration)
	}

	if s.reqBurst > 0 {
		rl := limiter.New(s.reqBurst, s.reqPerMinute, s.devMode, s.resErr)
		c = c.Append(rl.Middleware(ctx))
	}

	if s.serverHeader != "" {
		c = c.Append(ServerHeader(s.serverHeader))
	}

	if len(s.origins) > 0 {
		c = c.Append(cors.Handler(s.origins, s.devMode))
	}

	return c
}

// ServerHeader sets the Server HTTP header in the response.
func ServerHeader(version string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log.Info("Middleware response HTTP header: Set Server ", version)

		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Server", version)
				next.ServeHTTP(w, r)
			})
	}
}

// Run serves the main server on port, and optionally the Prometheus
// exporter and the PProf servers. Run returns when ctx is done (nil error)
// or when a server fails. All the servers are shut down gracefully.
func (s *Server) Run(ctx context.Context, port int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	servers := []*http.Server{s.newMainServer(ctx, port)}
	if s.metrics != nil {
		log.Info("Prometheus export http://localhost:" + strconv.Itoa(s.expPort) + "/metrics")
		servers = append(servers, s.metrics.NewServer(s.expPort))
	}
	if srv := pprof.NewServer(s.pprofPort); srv != nil {
		servers = append(servers, srv)
	}

	errs := make(chan error, len(servers))
	for _, srv := range servers {
		srv := srv
		go func() {
			err := srv.ListenAndServe()
			if !errors.Is(err, http.ErrServerClosed) {
				errs <- fmt.Errorf("server %s: %w", srv.Addr, err)
			}
		}()
	}

	log.Info("Server listening on http://localhost:" + strconv.Itoa(port))

	var err error
	select {
	case <-ctx.Done():
	case err = <-errs:
		log.Error(err)
		log.Print("Install ncat and ss: sudo apt install ncat iproute2")
		log.Printf("Try to listen port %v: sudo ncat -l %v", port, port)
		log.Printf("Get the process using port %v: sudo ss -pan | grep %v", port, port)
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()

	for _, srv := range servers {
		if e := srv.Shutdown(shutdownCtx); e != nil {
			log.Warn("shutdown ", srv.Addr, ": ", e)
		}
	}

	return err
}

func (s *Server) newMainServer(ctx context.Context, port int) *http.Server {
	return &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           s.Handler(ctx),
		TLSConfig:         nil,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       time.Minute,
		MaxHeaderBytes:    4 << 10,
		TLSNextProto:      nil,
		ConnState:         s.metrics.ConnState(),
		ErrorLog:          nil,
		BaseContext:       nil,
		ConnContext:       nil,
	}
}
