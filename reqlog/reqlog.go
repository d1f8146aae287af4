// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

// Package reqlog logs incoming request URL and requester information.
package reqlog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/teal-finance/emo"

	"github.com/teal-finance/r85/security"
)

var log = emo.NewZone("reqlog")

// LogRequest is the middleware to log the requester IP and the sanitized URL.
func LogRequest(next http.Handler) http.Handler {
	log.Info("Middleware LogRequest: requester IP and sanitized URL")

	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			log.Print(ipMethodURL(r))
			next.ServeHTTP(w, r)
		})
}

// LogVerbose also logs the key identifier and the payload description.
func LogVerbose(next http.Handler) http.Handler {
	log.Info("Middleware LogVerbose: requested URL, remote IP and also: " + InfoExplanation)

	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			log.Print(ipMethodURL(r) + info(r))
			next.ServeHTTP(w, r)
		})
}

// LogDuration logs the status code and the time to handle the request.
func LogDuration(next http.Handler) http.Handler {
	log.Info("Middleware LogDuration: requester IP, sanitized URL, status and duration")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := NewStatusRecorder(w)

		start := time.Now()
		next.ServeHTTP(rec, r)
		d := time.Since(start)

		log.Print(ipMethodURLDuration(r, rec.StatusCode, d))
	})
}

// StatusRecorder keeps the status code written by the next handlers.
type StatusRecorder struct {
	http.ResponseWriter
	StatusCode int
}

func NewStatusRecorder(w http.ResponseWriter) *StatusRecorder {
	return &StatusRecorder{ResponseWriter: w, StatusCode: http.StatusOK}
}

func (r *StatusRecorder) WriteHeader(status int) {
	r.StatusCode = status
	r.ResponseWriter.WriteHeader(status)
}

func ipMethodURL(r *http.Request) string {
	// double space after "in" is for padding with "out" logs
	return "in  " + r.RemoteAddr + " " + r.Method + " " + security.Sanitize(r.RequestURI)
}

func ipMethodURLDuration(r *http.Request, status int, d time.Duration) string {
	return "out " + r.RemoteAddr + " " + r.Method + " " +
		security.Sanitize(r.RequestURI) + " " + strconv.Itoa(status) + " " + d.String()
}

// InfoExplanation provides a description of the verbose fields.
const InfoExplanation = `
K=key identifier (fingerprint, never the key itself). 
N=Content-Length, the size of the request body. 
T=Content-Type, the media type of the request body. 
U=User-Agent, name and version of the client.`

func info(r *http.Request) string {
	key := r.Header.Get(security.KeyHeader)
	return " K=" + security.KeyID([]byte(key)) +
		" N=" + strconv.FormatInt(r.ContentLength, 10) +
		headerTxt(r, "Content-Type", " T=") +
		headerTxt(r, "User-Agent", " U=")
}

func headerTxt(r *http.Request, header, prefix string) string {
	v := r.Header.Get(header)
	if v == "" {
		return ""
	}
	return prefix + strconv.Quote(security.Sanitize(v))
}
