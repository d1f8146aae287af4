// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

// Package r85 converts binary data into printable ASCII text and back.
//
// Every group of 4 bytes becomes 5 characters taken from an alphabet
// of 85 printable ASCII characters, the last group may be shorter:
// n bytes (1 <= n <= 3) become n+1 characters.
// The 4 bytes are packed in little-endian order
// and the least significant digit is written first.
//
// An optional key permutes the alphabet. The same key is required to decode.
// This is obfuscation, not encryption: the key does not protect the data.
//
//	c := r85.New([]byte("s3cret"))
//	txt := c.EncodeToString(data)
//	bin, err := c.DecodeString(txt)
//
// A Codec is immutable and can be shared by concurrent goroutines.
package r85

import (
	"errors"
	"strconv"
)

var (
	// ErrInvalidSymbol is wrapped by SymbolError.
	ErrInvalidSymbol = errors.New("r85: invalid symbol")

	// ErrTrailingGroupLength is wrapped by LengthError.
	ErrTrailingGroupLength = errors.New("r85: invalid trailing group length")
)

// SymbolError reports a character that does not belong to the alphabet.
type SymbolError struct {
	Offset int64 // position in the encoded input
	Symbol byte
}

func (e *SymbolError) Error() string {
	return ErrInvalidSymbol.Error() + " " + strconv.QuoteRune(rune(e.Symbol)) +
		" at input byte " + strconv.FormatInt(e.Offset, 10)
}

func (e *SymbolError) Unwrap() error { return ErrInvalidSymbol }

// LengthError reports an encoded length that leaves one single character
// in the last group: no encoding produces such a group.
type LengthError struct {
	Length int64
}

func (e *LengthError) Error() string {
	return ErrTrailingGroupLength.Error() + ": encoded length " +
		strconv.FormatInt(e.Length, 10) + " leaves one symbol in the last group"
}

func (e *LengthError) Unwrap() error { return ErrTrailingGroupLength }

// Codec encodes and decodes using the alphabet derived from a key.
type Codec struct {
	alphabet *Alphabet
}

// Default uses the alphabet from '!' to 'u' (no key).
var Default = New(nil)

// New derives the alphabet once, the key is not retained.
func New(key []byte) *Codec {
	return &Codec{alphabet: NewAlphabet(key)}
}

// NewString is New with a text key.
func NewString(key string) *Codec {
	return New([]byte(key))
}

// Alphabet returns the alphabet used by the codec.
func (c *Codec) Alphabet() *Alphabet {
	return c.alphabet
}

// EncodedLen returns the length of the encoding of n source bytes.
func EncodedLen(n int) int {
	q, r := n/4, n%4
	if r == 0 {
		return 5 * q
	}
	return 5*q + r + 1
}

// DecodedLen returns the length of the decoding of n encoded bytes.
// It returns a LengthError when n%5 == 1.
func DecodedLen(n int) (int, error) {
	q, r := n/5, n%5
	switch r {
	case 0:
		return 4 * q, nil
	case 1:
		return 0, &LengthError{Length: int64(n)}
	default:
		return 4*q + r - 1, nil
	}
}

// Encode encodes src into EncodedLen(len(src)) bytes of dst
// and returns the number of bytes written.
func (c *Codec) Encode(dst, src []byte) int {
	enc := &c.alphabet.encode
	n := 0

	for len(src) > 0 {
		size := 4
		if len(src) < 4 {
			size = len(src)
		}

		var v uint32
		for k := 0; k < size; k++ {
			v |= uint32(src[k]) << (8 * k)
		}

		for k := 0; k <= size; k++ {
			dst[n] = enc[v/pow85[k]%base]
			n++
		}

		src = src[size:]
	}

	return n
}

// AppendEncode appends the encoding of src to dst.
func (c *Codec) AppendEncode(dst, src []byte) []byte {
	n := len(dst)
	size := EncodedLen(len(src))
	if cap(dst)-n < size {
		grown := make([]byte, n, n+size)
		copy(grown, dst)
		dst = grown
	}
	dst = dst[:n+size]
	c.Encode(dst[n:], src)
	return dst
}

// EncodeToBytes returns the encoding of src in a new buffer.
func (c *Codec) EncodeToBytes(src []byte) []byte {
	dst := make([]byte, EncodedLen(len(src)))
	c.Encode(dst, src)
	return dst
}

// EncodeToString returns the encoding of src as printable ASCII text.
func (c *Codec) EncodeToString(src []byte) string {
	return string(c.EncodeToBytes(src))
}

// Decode decodes src into DecodedLen(len(src)) bytes of dst
// and returns the number of bytes written.
// On error, nothing meaningful is written and n is zero.
func (c *Codec) Decode(dst, src []byte) (n int, err error) {
	if _, err := DecodedLen(len(src)); err != nil {
		return 0, err
	}

	n, err = c.decode(dst, src, 0)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// decode expects a valid length, offset shifts the position in the error.
func (c *Codec) decode(dst, src []byte, offset int64) (int, error) {
	dec := &c.alphabet.decode
	n := 0

	for i := 0; i < len(src); {
		size := 5
		if len(src)-i < 5 {
			size = len(src) - i
		}

		// 85^5 > 2^32: keep the low 32 bits of an out of range group
		var v uint64
		for k := 0; k < size; k++ {
			d := dec[src[i+k]]
			if d < 0 {
				return 0, &SymbolError{Offset: offset + int64(i+k), Symbol: src[i+k]}
			}
			v += uint64(d) * uint64(pow85[k])
		}

		for k := 0; k < size-1; k++ {
			dst[n] = byte(v >> (8 * k))
			n++
		}

		i += size
	}

	return n, nil
}

// DecodeBytes returns the decoding of src in a new buffer.
func (c *Codec) DecodeBytes(src []byte) ([]byte, error) {
	size, err := DecodedLen(len(src))
	if err != nil {
		return nil, err
	}

	dst := make([]byte, size)
	if _, err := c.decode(dst, src, 0); err != nil {
		return nil, err
	}
	return dst, nil
}

// DecodeString returns the bytes represented by the encoded string s.
func (c *Codec) DecodeString(s string) ([]byte, error) {
	return c.DecodeBytes([]byte(s))
}

// DecodeToString decodes s and returns the result as text.
// The decoded bytes are expected to be UTF-8 but are not validated.
func (c *Codec) DecodeToString(s string) (string, error) {
	bin, err := c.DecodeString(s)
	if err != nil {
		return "", err
	}
	return string(bin), nil
}

// Encode encodes using the default alphabet (no key).
func Encode(bin []byte) string {
	return Default.EncodeToString(bin)
}

// Decode decodes using the default alphabet (no key).
func Decode(str string) ([]byte, error) {
	return Default.DecodeString(str)
}
