// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/mailru/easyjson"

	"github.com/teal-finance/r85"
	"github.com/teal-finance/r85/compression"
	"github.com/teal-finance/r85/iec"
	"github.com/teal-finance/r85/reserr"
	"github.com/teal-finance/r85/security"
	"github.com/teal-finance/r85/version"
)

const (
	opEncode = "encode"
	opDecode = "decode"
)

// encode returns the symbols of the request body as text.
// The optional ?zip=.ext compresses the body before encoding.
func (s *Server) encode(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(r)
	if err != nil {
		s.fail(w, r, opEncode, err)
		return
	}

	in := int64(len(body))

	if ext := r.URL.Query().Get("zip"); ext != "" {
		body, err = compress(body, ext)
		if err != nil {
			s.fail(w, r, opEncode, err)
			return
		}
	}

	codec := s.cache.get([]byte(r.Header.Get(security.KeyHeader)))
	out := codec.EncodeToBytes(body)
	s.metrics.CountBytes(opEncode, in, int64(len(out)))

	w.Header().Set("Content-Type", "text/plain; charset=us-ascii")
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	_, _ = w.Write(out)
}

// decode returns the binary data of the symbols in the request body.
// Line breaks are skipped. The optional ?zip=.ext decompresses after decoding.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(r)
	if err != nil {
		s.fail(w, r, opDecode, err)
		return
	}

	codec := s.cache.get([]byte(r.Header.Get(security.KeyHeader)))
	bin, err := io.ReadAll(codec.NewDecoder(bytes.NewReader(body), r85.WithLineBreaks()))
	if err != nil {
		s.fail(w, r, opDecode, err)
		return
	}

	if ext := r.URL.Query().Get("zip"); ext != "" {
		bin, err = s.decompress(bin, ext)
		if err != nil {
			s.fail(w, r, opDecode, err)
			return
		}
	}

	s.metrics.CountBytes(opDecode, int64(len(body)), int64(len(bin)))

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(bin)))
	_, _ = w.Write(bin)
}

func (s *Server) apiEncode(w http.ResponseWriter, r *http.Request) {
	var req apiRequest
	if err := s.readJSON(r, &req); err != nil {
		s.fail(w, r, opEncode, err)
		return
	}

	codec := s.cache.get([]byte(req.Key))
	out := codec.EncodeToString([]byte(req.Data))
	s.metrics.CountBytes(opEncode, int64(len(req.Data)), int64(len(out)))

	writeJSON(w, apiResponse{Data: out, Length: len(req.Data)})
}

func (s *Server) apiDecode(w http.ResponseWriter, r *http.Request) {
	var req apiRequest
	if err := s.readJSON(r, &req); err != nil {
		s.fail(w, r, opDecode, err)
		return
	}

	codec := s.cache.get([]byte(req.Key))
	text, err := codec.DecodeToString(req.Data)
	if err != nil {
		s.fail(w, r, opDecode, err)
		return
	}

	s.metrics.CountBytes(opDecode, int64(len(req.Data)), int64(len(text)))

	writeJSON(w, apiResponse{Data: text, Length: len(text)})
}

func (s *Server) version(w http.ResponseWriter, _ *http.Request) {
	info := version.Info(s.name)
	writeJSON(w, versionResponse{Version: info[0], Info: info[1:]})
}

// readBody reads at most maxBody bytes.
func (s *Server) readBody(r *http.Request) ([]byte, error) {
	if r.ContentLength > s.maxBody {
		return nil, fmt.Errorf("%w: %s > %s", reserr.ErrBodyTooLarge, iec.Size(r.ContentLength), iec.Size(s.maxBody))
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, s.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if int64(len(body)) > s.maxBody {
		return nil, fmt.Errorf("%w: max %s", reserr.ErrBodyTooLarge, iec.Size(s.maxBody))
	}

	return body, nil
}

func (s *Server) readJSON(r *http.Request, v easyjson.Unmarshaler) error {
	body, err := s.readBody(r)
	if err != nil {
		return err
	}

	if err = easyjson.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", reserr.ErrBadRequest, err)
	}

	return nil
}

func writeJSON(w http.ResponseWriter, v easyjson.Marshaler) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if _, _, err := easyjson.MarshalToHTTPResponseWriter(v, w); err != nil {
		log.Warn("write JSON response: ", err)
	}
}

func compress(data []byte, ext string) ([]byte, error) {
	var buf bytes.Buffer

	zw, err := compression.Compressor(&buf, ext, compression.DefaultLevel)
	if err != nil {
		return nil, err
	}

	if _, err = zw.Write(data); err != nil {
		return nil, fmt.Errorf("compress %s: %w", ext, err)
	}

	if err = zw.Close(); err != nil {
		return nil, fmt.Errorf("compress %s: %w", ext, err)
	}

	return buf.Bytes(), nil
}

// decompress limits the decompressed size to maxBody.
func (s *Server) decompress(data []byte, ext string) ([]byte, error) {
	zr, err := compression.Decompressor(bytes.NewReader(data), ext)
	if err != nil {
		if errors.Is(err, compression.ErrUnsupportedExt) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", reserr.ErrBadRequest, err)
	}
	defer zr.Close()

	out, err := io.ReadAll(io.LimitReader(zr, s.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("%w: decompress %s: %v", reserr.ErrBadRequest, ext, err)
	}

	if int64(len(out)) > s.maxBody {
		return nil, fmt.Errorf("%w: decompressed data exceeds %s", reserr.ErrBodyTooLarge, iec.Size(s.maxBody))
	}

	return out, nil
}

// fail counts the error and writes the JSON error response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.metrics.CountError(op, errKind(err))
	s.resErr.WriteErr(w, r, err)
}

func errKind(err error) string {
	switch {
	case errors.Is(err, r85.ErrInvalidSymbol):
		return "symbol"
	case errors.Is(err, r85.ErrTrailingGroupLength):
		return "length"
	case errors.Is(err, compression.ErrUnsupportedExt):
		return "zip"
	case errors.Is(err, reserr.ErrBodyTooLarge):
		return "body"
	case errors.Is(err, reserr.ErrBadRequest):
		return "request"
	default:
		return "other"
	}
}
