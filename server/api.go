// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

package server

//go:generate go run github.com/mailru/easyjson/easyjson -no_std_marshalers api.go

// apiRequest is the body of /api/v1/encode and /api/v1/decode.
// Data is UTF-8 text to encode, or the symbols to decode.
//
//easyjson:json
type apiRequest struct {
	Key  string `json:"key"`
	Data string `json:"data"`
}

// apiResponse.Length is the byte size of the plain side:
// the input of an encoding or the output of a decoding.
//
//easyjson:json
type apiResponse struct {
	Data   string `json:"data"`
	Length int    `json:"length"`
}

//easyjson:json
type versionResponse struct {
	Version string   `json:"version"`
	Info    []string `json:"info,omitempty"`
}
