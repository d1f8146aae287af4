// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

// Package reserr writes the JSON error responses of the r85 service.
package reserr

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/teal-finance/emo"

	"github.com/teal-finance/r85"
	"github.com/teal-finance/r85/compression"
)

var log = emo.NewZone("reserr")

const (
	pathReserved = "Path is reserved for future use. Please contact us to share your ideas."
	pathInvalid  = "Path is not valid. Please refer to the documentation."
)

var (
	// ErrBodyTooLarge is reported when the request body exceeds the limit.
	ErrBodyTooLarge = errors.New("request body too large")
	// ErrBadRequest wraps the malformed inputs other than the codec errors.
	ErrBadRequest = errors.New("bad request")
)

// Writer enables writing useful JSON error message in the HTTP response body.
// Its value is the documentation URL, included in every error response.
type Writer string

// msg is the body of an error response.
//
//easyjson:json
type msg struct {
	Message string `json:"message"`
	Offset  *int64 `json:"offset,omitempty"`
	Path    string `json:"path,omitempty"`
	Query   string `json:"query,omitempty"`
	Doc     string `json:"doc,omitempty"`
}

func (gw Writer) NotImplemented(w http.ResponseWriter, r *http.Request) {
	gw.Write(w, r, http.StatusNotImplemented, pathReserved)
}

func (gw Writer) InvalidPath(w http.ResponseWriter, r *http.Request) {
	gw.Write(w, r, http.StatusBadRequest, pathInvalid)
}

// Write is a fast pretty-JSON writer dedicated to the HTTP error response.
func (gw Writer) Write(w http.ResponseWriter, r *http.Request, statusCode int, text string) {
	buf := make([]byte, 0, 300)

	buf = append(buf, `{"message":`...)
	buf = strconv.AppendQuoteToGraphic(buf, text)

	if r != nil {
		buf = append(buf, ",\n"+`"path":`...)
		buf = strconv.AppendQuote(buf, r.URL.Path)

		if r.URL.RawQuery != "" {
			buf = append(buf, ",\n"+`"query":`...)
			buf = strconv.AppendQuote(buf, r.URL.RawQuery)
		}
	}

	if gw != "" {
		buf = append(buf, ",\n"+`"doc":`...)
		buf = strconv.AppendQuote(buf, string(gw))
	}

	buf = append(buf, '}', '\n')

	writeJSON(w, statusCode, buf)
}

// WriteSafe is the easyjson alternative to Write,
// it also reports the input offset of a decoding error when offset is not nil.
// A zero offset is kept: the invalid symbol may be the first one.
func (gw Writer) WriteSafe(w http.ResponseWriter, r *http.Request, statusCode int, text string, offset *int64) {
	m := msg{
		Message: text,
		Offset:  offset,
		Path:    "",
		Query:   "",
		Doc:     string(gw),
	}

	if r != nil {
		m.Path = r.URL.Path
		m.Query = r.URL.RawQuery
	}

	buf, err := m.MarshalJSON()
	if err != nil {
		log.Error("reserr MarshalJSON ", m, " err: ", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, statusCode, buf)
}

// WriteErr maps an encoding/decoding error to the HTTP status code.
func (gw Writer) WriteErr(w http.ResponseWriter, r *http.Request, err error) {
	var (
		se *r85.SymbolError
		le *r85.LengthError
	)

	switch {
	case errors.As(err, &se):
		gw.WriteSafe(w, r, http.StatusBadRequest, err.Error(), &se.Offset)
	case errors.As(err, &le):
		gw.WriteSafe(w, r, http.StatusBadRequest, err.Error(), &le.Length)
	case errors.Is(err, compression.ErrUnsupportedExt), errors.Is(err, ErrBadRequest):
		gw.Write(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrBodyTooLarge):
		gw.Write(w, r, http.StatusRequestEntityTooLarge, err.Error())
	default:
		log.Warnf("%s %v", r.URL.Path, err)
		gw.Write(w, r, http.StatusInternalServerError, "Internal Server Error")
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, buf []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf)
}

func InvalidPath(w http.ResponseWriter, r *http.Request) {
	Writer("").InvalidPath(w, r)
}

func NotImplemented(w http.ResponseWriter, r *http.Request) {
	Writer("").NotImplemented(w, r)
}
