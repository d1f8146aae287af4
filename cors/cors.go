// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

// Package cors handles the Cross-Origin Resource Sharing of the r85 service.
package cors

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
	"github.com/teal-finance/emo"

	"github.com/teal-finance/r85/security"
)

var log = emo.NewZone("cors")

// Handler uses restrictive CORS values.
// The origin "*" allows any website, credentials are never allowed.
func Handler(origins []string, debug bool) func(next http.Handler) http.Handler {
	options := cors.Options{
		AllowedOrigins:         nil,
		AllowOriginFunc:        nil,
		AllowOriginRequestFunc: nil,
		AllowedMethods:         []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:         []string{"Origin", "Accept", "Content-Type", security.KeyHeader},
		ExposedHeaders:         nil,
		MaxAge:                 24 * 3600, // https://developer.mozilla.org/docs/Web/HTTP/Headers/Access-Control-Max-Age
		AllowCredentials:       false,
		OptionsPassthrough:     false,
		OptionsSuccessStatus:   http.StatusNoContent,
		Debug:                  debug, // verbose logs
	}

	switch {
	case len(origins) == 0:
		log.Panic("CORS: missing origins")
	case contains(origins, "*"):
		options.AllowedOrigins = []string{"*"}
		log.Info("CORS: allow any origin")
	default:
		origins = InsertSchema(origins)
		if len(origins) == 1 {
			options.AllowOriginFunc = oneOrigin(origins[0])
		} else {
			options.AllowOriginFunc = multipleOriginPrefixes(origins)
		}
	}

	log.Infof("CORS: Methods=%v Headers=%v Credentials=%v MaxAge=%v",
		options.AllowedMethods, options.AllowedHeaders, options.AllowCredentials, options.MaxAge)

	return cors.New(options).Handler
}

// InsertSchema returns the origins prefixed by "http://" when the schema is missing.
func InsertSchema(origins []string) []string {
	result := make([]string, 0, len(origins))
	for _, o := range origins {
		if !strings.HasPrefix(o, "https://") &&
			!strings.HasPrefix(o, "http://") {
			o = "http://" + o
		}
		result = append(result, o)
	}
	return result
}

func contains(origins []string, s string) bool {
	for _, o := range origins {
		if o == s {
			return true
		}
	}
	return false
}

func oneOrigin(addr string) func(string) bool {
	log.Info("CORS: Set one origin: ", addr)

	return func(origin string) bool {
		return origin == addr
	}
}

func multipleOriginPrefixes(addrPrefixes []string) func(origin string) bool {
	log.Info("CORS: Set origin prefixes: ", addrPrefixes)

	return func(origin string) bool {
		for _, prefix := range addrPrefixes {
			if strings.HasPrefix(origin, prefix) {
				return true
			}
		}

		log.Info("CORS: Refuse ", security.Sanitize(origin), " without prefixes ", addrPrefixes)
		return false
	}
}
