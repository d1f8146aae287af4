// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

// Package metrics exports the web traffic and codec metrics to Prometheus.
// A nil *Metrics is valid and disables all the measures.
package metrics

import (
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/teal-finance/emo"

	"github.com/teal-finance/r85/reqlog"
)

var log = emo.NewZone("metrics")

// Metrics holds its own registry so that several servers
// (and the tests) can live in the same process.
type Metrics struct {
	reg       *prometheus.Registry
	namespace string

	connGauge  prometheus.Gauge
	iniCounter prometheus.Counter
	reqCounter prometheus.Counter
	resCounter prometheus.Counter
	hijCounter prometheus.Counter

	duration *prometheus.HistogramVec
	bytes    *prometheus.CounterVec
	errors   *prometheus.CounterVec
}

// New registers the metrics within the namespace derived from name.
func New(name string) *Metrics {
	ns := Namespace(name)
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)

	f := promauto.With(reg)

	m := &Metrics{
		reg:        reg,
		namespace:  ns,
		connGauge:  f.NewGauge(gaugeOpts(ns, "in_flight_connections", "Number of current active connections")),
		iniCounter: f.NewCounter(counterOpts(ns, "http", "conn_new_total", "Total initiated connections since startup")),
		reqCounter: f.NewCounter(counterOpts(ns, "http", "conn_req_total", "Total requested connections since startup")),
		resCounter: f.NewCounter(counterOpts(ns, "http", "conn_res_total", "Total responded connections since startup")),
		hijCounter: f.NewCounter(counterOpts(ns, "http", "conn_hij_total", "Total hijacked connections since startup")),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   ns,
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "Time to handle a client request",
			ConstLabels: nil,
			Buckets:     prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"code", "route"}),
		bytes: f.NewCounterVec(counterOpts(ns, "codec", "bytes_total",
			"Bytes consumed (dir=in) and produced (dir=out) by the codec"),
			[]string{"op", "dir"}),
		errors: f.NewCounterVec(counterOpts(ns, "codec", "errors_total",
			"Codec failures by kind (symbol, length, zip, body, request, other)"),
			[]string{"op", "kind"}),
	}

	log.Info("Prometheus namespace=" + ns)
	return m
}

// Namespace respects the Prometheus naming rule: [a-zA-Z][a-zA-Z0-9_]*
// It keeps the last basename when name is a path or an URL.
func Namespace(name string) string {
	name = strings.Trim(name, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	name = strings.ReplaceAll(name, "-", "_")
	name = invalidChars.ReplaceAllLiteralString(name, "")

	if name == "" || !unicode.IsLetter(rune(name[0])) {
		name = "a" + name
	}
	return name
}

var invalidChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

func gaugeOpts(ns, name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   ns,
		Subsystem:   "http",
		Name:        name,
		Help:        help,
		ConstLabels: nil,
	}
}

func counterOpts(ns, subsystem, name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   ns,
		Subsystem:   subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: nil,
	}
}

// ConnState counts the HTTP connections depending on
// incoming requests and outgoing responses.
func (m *Metrics) ConnState() func(net.Conn, http.ConnState) {
	if m == nil {
		return nil
	}

	return func(_ net.Conn, cs http.ConnState) {
		switch cs {
		// the client just connects, the server expects its request
		case http.StateNew:
			m.connGauge.Inc()
			m.iniCounter.Inc()

		// a request is being received
		case http.StateActive:
			m.reqCounter.Inc()

		// keep-alive state waiting for a new request
		case http.StateIdle:
			m.resCounter.Inc()

		// terminal states
		case http.StateHijacked:
			m.connGauge.Dec()
			m.hijCounter.Inc()
		case http.StateClosed:
			m.connGauge.Dec()
		}
	}
}

// Middleware measures the time to handle a request.
// The route label is the URL path when it belongs to routes,
// otherwise "other" to bound the label cardinality.
func (m *Metrics) Middleware(routes ...string) func(http.Handler) http.Handler {
	if m == nil {
		return nil
	}

	known := make(map[string]struct{}, len(routes))
	for _, r := range routes {
		known[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		log.Info("Middleware ExportTrafficMetrics: routes=", routes)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := reqlog.NewStatusRecorder(w)

			start := time.Now()
			next.ServeHTTP(rec, r)
			d := time.Since(start)

			route := r.URL.Path
			if _, ok := known[route]; !ok {
				route = "other"
			}

			m.duration.WithLabelValues(StatusCodeStr(rec.StatusCode), route).Observe(d.Seconds())
		})
	}
}

// CountBytes accumulates the sizes of a successful encode or decode.
func (m *Metrics) CountBytes(op string, in, out int64) {
	if m == nil {
		return
	}
	m.bytes.WithLabelValues(op, "in").Add(float64(in))
	m.bytes.WithLabelValues(op, "out").Add(float64(out))
}

// CountError increments the failures of the operation.
func (m *Metrics) CountError(op, kind string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(op, kind).Inc()
}

// Handler serves /metrics and /health.
func (m *Metrics) Handler() http.Handler {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{}))
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		log.Warn("--> ", r.RemoteAddr, " ", r.Method, " ", strconv.Quote(r.RequestURI), " on Exporter Server")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"This is the Exporter/Health Server"}` + "\n"))
	})
	return r
}

// NewServer returns the exporter server, the caller starts and stops it.
func (m *Metrics) NewServer(port int) *http.Server {
	return &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           m.Handler(),
		TLSConfig:         nil,
		ReadTimeout:       time.Second,
		ReadHeaderTimeout: time.Second,
		WriteTimeout:      time.Minute,
		IdleTimeout:       time.Second,
		MaxHeaderBytes:    444, // 444 bytes should be enough
		TLSNextProto:      nil,
		ConnState:         nil,
		ErrorLog:          nil,
		BaseContext:       nil,
		ConnContext:       nil,
	}
}

// StatusCodeStr avoids strconv for the common codes.
func StatusCodeStr(code int) string {
	switch code {
	case http.StatusOK:
		return "200"
	case http.StatusNoContent:
		return "204"
	case http.StatusBadRequest:
		return "400"
	case http.StatusRequestEntityTooLarge:
		return "413"
	case http.StatusTooManyRequests:
		return "429"
	case http.StatusInternalServerError:
		return "500"
	}
	return strconv.Itoa(code)
}
