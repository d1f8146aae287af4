// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

package r85

const (
	// first and last printable ASCII characters: '!' and '~'.
	firstSymbol = 0x21
	lastSymbol  = 0x7E

	// poolSize is the number of printable ASCII characters.
	poolSize = lastSymbol - firstSymbol + 1

	// base is 85.
	base = 85

	// MaxPhraseLen is the number of key bytes driving the alphabet derivation.
	MaxPhraseLen = base
)

// pow85 weights the digits of a group, the least significant digit first.
var pow85 = [5]uint32{1, 85, 85 * 85, 85 * 85 * 85, 85 * 85 * 85 * 85}

// Alphabet is an optimized form of the 85 encoding characters
// with the reverse lookup table.
// An Alphabet is never modified after creation.
type Alphabet struct {
	decode [256]int8
	encode [base]byte
}

// symbolPool returns the 94 printable ASCII characters in ascending order.
func symbolPool() []byte {
	pool := make([]byte, poolSize)
	for i := range pool {
		pool[i] = byte(firstSymbol + i)
	}
	return pool
}

// NewAlphabet derives the alphabet from the key.
// An empty key selects the characters from '!' to 'u'.
// Otherwise, only the first 85 bytes of the key (the phrase) are used,
// cyclically, to pick the characters from the printable ASCII pool.
func NewAlphabet(key []byte) *Alphabet {
	pool := symbolPool()
	a := new(Alphabet)

	if len(key) == 0 {
		copy(a.encode[:], pool)
	} else {
		phrase := key
		if len(phrase) > MaxPhraseLen {
			phrase = phrase[:MaxPhraseLen]
		}

		for i := range a.encode {
			remaining := poolSize - i
			k := int(phrase[i%len(phrase)]) % remaining
			a.encode[i] = pool[k]
			// the order of the remaining characters matters: shift, not swap
			copy(pool[k:remaining], pool[k+1:remaining])
		}
	}

	for i := range a.decode {
		a.decode[i] = -1
	}
	for i, b := range a.encode {
		a.decode[b] = int8(i)
	}

	return a
}

// String returns the 85 characters in index order.
func (a *Alphabet) String() string {
	return string(a.encode[:])
}

// Symbol returns the character at index i (0 <= i < 85).
func (a *Alphabet) Symbol(i int) byte {
	return a.encode[i]
}

// Index returns the position of the character b within the alphabet,
// ok is false when b does not belong to the alphabet.
func (a *Alphabet) Index(b byte) (i int, ok bool) {
	i = int(a.decode[b])
	return i, i >= 0
}

// Contains reports whether b is one of the 85 characters.
func (a *Alphabet) Contains(b byte) bool {
	return a.decode[b] >= 0
}
