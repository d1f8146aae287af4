// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

// Command r85d serves the r85 codec over HTTP.
//
//	curl --data-binary @photo.jpg -H 'X-R85-Key: s3cret' localhost:8085/encode?zip=.zst
//	curl -d '{"key":"s3cret","data":"hello"}' localhost:8085/api/v1/encode
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/teal-finance/emo"

	"github.com/teal-finance/r85/env"
	"github.com/teal-finance/r85/pprof"
	"github.com/teal-finance/r85/server"
	"github.com/teal-finance/r85/version"
)

var log = emo.NewZone("r85d")

const program = "r85d"

func main() {
	// run returns before os.Exit, so its deferred calls flush the CPU profile
	if err := run(); err != nil {
		log.Error(err)
		os.Exit(1)
	}

	log.Info("Server stopped")
}

func run() error {
	version.SetFlag(nil, program)

	port := flag.Int("port", env.Int("MAIN_PORT", 8085), "Main port, env. var. MAIN_PORT")
	expPort := flag.Int("exp", env.Int("EXP_PORT", 9095), "Prometheus export port (0 disables), env. var. EXP_PORT")
	pprofPort := flag.Int("pprof", env.Int("PPROF_PORT", 0), "PProf port on localhost (0 disables), env. var. PPROF_PORT")
	burst := flag.Int("burst", env.Int("REQ_BURST", 20), "Max requests in burst per IP (0 disables the limiter), env. var. REQ_BURST")
	perMinute := flag.Int("rate", env.Int("REQ_PER_MINUTE", 80), "Max requests per minute per IP, env. var. REQ_PER_MINUTE")
	maxBody := flag.Int64("max-body", int64(env.Int("MAX_BODY", int(server.DefaultMaxBody))), "Max request body size in bytes, env. var. MAX_BODY")
	origins := flag.String("origins", env.Str("ALLOW_ORIGINS"), "CORS origins, comma separated (empty disables CORS), env. var. ALLOW_ORIGINS")
	cacheSize := flag.Int("cache", server.DefaultCacheSize, "Number of codecs kept for the recent keys")
	doc := flag.String("doc", "", "Documentation URL included in the error responses")
	verbosity := flag.Int("v", 1, "Request logs: 0=none 1=in/out 2=also key identifier and payload")
	dev := flag.Bool("dev", false, "Development mode: relaxed rate limiter and CORS debug logs")
	cpuProfile := flag.String("cpuprofile", "", "Write cpu.pprof in this directory when the server stops")
	flag.Parse()

	if flag.NArg() > 0 {
		return errors.New("unexpected arguments: " + strings.Join(flag.Args(), " "))
	}

	if *cpuProfile != "" {
		defer pprof.ProbeCPU(*cpuProfile).Stop()
	}

	for _, line := range version.Info(program) {
		log.Info(line)
	}

	s := server.New(
		server.WithDev(*dev),
		server.WithProm(*expPort, program),
		server.WithPProf(*pprofPort),
		server.WithLimiter(*burst, *perMinute),
		server.WithOrigins(env.SplitClean(*origins)...),
		server.WithMaxBody(*maxBody),
		server.WithCacheSize(*cacheSize),
		server.WithDocURL(*doc),
		server.WithReqLogs(*verbosity),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return s.Run(ctx, *port)
}
