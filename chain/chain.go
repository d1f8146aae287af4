// Copyright (c) 2014      Justinas Stankevicius
// Copyright (c) 2015-2016 contributors of alice
// Copyright (c) 2022      Teal.Finance/R85 contributors
//
// Adapted from https://github.com/justinas/alice
//
// SPDX-License-Identifier: MIT

// Package chain composes the HTTP middlewares of the r85 service.
package chain

import "net/http"

// Middleware is a constructor function returning a http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain lists the middlewares in request order.
type Chain []Middleware

// New creates a chain. The middlewares are only constructed by Then.
// Nil middlewares are dropped so optional ones can be passed as is.
func New(mw ...Middleware) Chain {
	return Chain(nil).Append(mw...)
}

// Append returns a new chain extended with mw,
// the receiver is left untouched.
//
//	c := chain.New(m1, m2).Append(m3)
//	// requests go m1 -> m2 -> m3
func (c Chain) Append(mw ...Middleware) Chain {
	ext := make(Chain, 0, len(c)+len(mw))
	ext = append(ext, c...)
	for _, m := range mw {
		if m != nil {
			ext = append(ext, m)
		}
	}
	return ext
}

// Then wraps the handler: chain.New(m1, m2).Then(h) is m1(m2(h)).
// Then treats nil as http.DefaultServeMux.
func (c Chain) Then(handler http.Handler) http.Handler {
	if handler == nil {
		handler = http.DefaultServeMux
	}
	for i := len(c) - 1; i >= 0; i-- {
		handler = c[i](handler)
	}
	return handler
}

// ThenFunc works like Then with a HandlerFunc.
func (c Chain) ThenFunc(fn http.HandlerFunc) http.Handler {
	if fn == nil {
		return c.Then(nil)
	}
	return c.Then(fn)
}
