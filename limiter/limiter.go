// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

// Package limiter limits the request rate of each remote IP.
package limiter

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/teal-finance/emo"
	"golang.org/x/time/rate"

	"github.com/teal-finance/r85/reserr"
	"github.com/teal-finance/r85/security"
)

var log = emo.NewZone("limiter")

const (
	// MaxWait is the longest delay a request may be held
	// before being rejected with 429 Too Many Requests.
	MaxWait = 2 * time.Second

	cleanupPeriod = time.Minute
	forgetAfter   = 3 * time.Minute
)

type ReqLimiter struct {
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	mu       sync.Mutex
	resErr   reserr.Writer
}

type visitor struct {
	lastSeen time.Time
	limiter  *rate.Limiter
}

// New creates the rate limiter. The devMode multiplies both settings by 10.
func New(maxReqBurst, maxReqPerMinute int, devMode bool, resErr reserr.Writer) *ReqLimiter {
	if devMode {
		maxReqBurst *= 10
		maxReqPerMinute *= 10
	}

	return &ReqLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(maxReqPerMinute) / 60),
		burst:    maxReqBurst,
		mu:       sync.Mutex{},
		resErr:   resErr,
	}
}

// Middleware returns the rate limiting middleware.
// The removal of the inactive visitors stops when ctx is done.
func (rl *ReqLimiter) Middleware(ctx context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log.Infof("Middleware RateLimiter: burst=%v rate=%.2f/s", rl.burst, float64(rl.limit))

		go rl.removeOldVisitors(ctx)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				rl.resErr.Write(w, r, http.StatusInternalServerError, "Cannot split addr=host:port")
				log.Error("in  ", security.Sanitize(r.RemoteAddr), " ", r.Method, " SplitHostPort ", err)
				return
			}

			limiter := rl.getVisitor(ip)

			wait, cancel := context.WithTimeout(r.Context(), MaxWait)
			err = limiter.Wait(wait)
			cancel()

			if err != nil {
				if r.Context().Err() == nil {
					rl.resErr.Write(w, r, http.StatusTooManyRequests, "Too Many Requests")
					log.Warn("rej ", r.RemoteAddr, " ", r.Method, " ", security.Sanitize(r.RequestURI), " TooManyRequests ", err)
				} else {
					log.Warn("XXX ", r.RemoteAddr, " ", r.Method, " ", security.Sanitize(r.RequestURI), " ", err)
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Visitors is the number of remote IPs being tracked.
func (rl *ReqLimiter) Visitors() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

func (rl *ReqLimiter) removeOldVisitors(ctx context.Context) {
	ticker := time.NewTicker(cleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.forget(now.Add(-forgetAfter))
		}
	}
}

// forget removes the visitors not seen since the deadline.
func (rl *ReqLimiter) forget(deadline time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, v := range rl.visitors {
		if v.lastSeen.Before(deadline) {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *ReqLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{
			limiter:  rate.NewLimiter(rl.limit, rl.burst),
			lastSeen: time.Time{},
		}
		rl.visitors[ip] = v
	}

	v.lastSeen = time.Now()

	return v.limiter
}
