// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

package server

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/teal-finance/r85"
	"github.com/teal-finance/r85/security"
)

// DefaultCacheSize is the number of codecs kept by default.
const DefaultCacheSize = 128

type fingerprint = [16]byte

// codecCache avoids deriving the alphabet of the recent keys at every request.
// The keys are indexed by fingerprint, never stored in clear.
type codecCache struct {
	lru *lru.Cache[fingerprint, *r85.Codec]
}

func newCodecCache(size int) *codecCache {
	c, err := lru.New[fingerprint, *r85.Codec](size)
	if err != nil {
		log.Panic("codec cache: ", err)
	}
	return &codecCache{lru: c}
}

// get returns the codec of the key, the empty key uses the default alphabet.
func (c *codecCache) get(key []byte) *r85.Codec {
	if len(key) == 0 {
		return r85.Default
	}

	fp := security.Fingerprint(key)
	if codec, ok := c.lru.Get(fp); ok {
		return codec
	}

	codec := r85.New(key)
	c.lru.Add(fp, codec)
	log.Debugf("codec cache: add key=%s len=%d", security.KeyID(key), c.lru.Len())
	return codec
}

func (c *codecCache) len() int {
	return c.lru.Len()
}
