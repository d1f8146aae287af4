// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

package r85_test

import (
	"bytes"
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/teal-finance/r85"
)

// encodedNoKey is the encoding of the 258 bytes 0, 1, 2... 255, 0, 1.
const encodedNoKey = "" +
	"'K/s!7>k6#G1RO$W$9h%glt+'\"`[D(2SB])BF)!+R9e9,b,LR-rt2k.-hn.0" +
	"=[UG1MN<`2]A#$4m4_<5((FU68p,n7Hch19XVOJ:hI6c;#=r&=30Y?>C#@X?" +
	"Sk&q@c^b4BsQIMC.E0fD>8l)FN+SBG^s9[HnfusI)Z\\7K9MCPLI@*iMY3f,O" +
	"i&MEP$o3^Q4bo!SDUV:TTH=SUd;$lVt.`/X/\"GHY?j-aZO]i$\\_PP=]oC7V^" +
	"*7sn_:*Z2aJr@KbZe'dcjXc'e%LJ@f5?1YgE2mqhU%T5jem:Nku`!gl0T]*n" +
	"@GDCoP:+\\p`-gtqpuM8s\"$!"

// encodedSecret is the same input encoded with the key "s3cret".
const encodedSecret = "" +
	"A19R6Jq{](i?+):u:e$-3#^5AUbl}[W7wC0wv065+eneK\"K!+Lk^W{aL$paP" +
	"VlFi?|<jbWC\\(:g`g'jD[[vF]dMKpJ%,$?e;o).m$t],O(Vk@VXPYrqc(s;r" +
	"7{@/s,S\"gwRNt|ca~PT}qd#0v<57wiSRel%pTZRt0&=J1e|cI!tsE8|YXTK)" +
	"8@|~I:4XSNg\"467}Fom__%V7FyO:#o^ab9;9Ui%YrQLB&)C8:='IIVC4cJoS" +
	"EJRp'mE&WB.ks1\"&nAy,Q;,An-!.sTDr?Y3~W`/$F-_DQn`m<{Zb63#P_CEp" +
	"si}c4Im5=MbL3^/MZ|dRU:6"

func allByteValues(n int) []byte {
	bin := make([]byte, n)
	for i := range bin {
		bin[i] = byte(i)
	}
	return bin
}

func TestFixtures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		key  string
		bin  []byte
		str  string
	}{
		{"258 bytes without key", "", allByteValues(258), encodedNoKey},
		{"256 bytes without key", "", allByteValues(256), encodedNoKey[:320]},
		{"258 bytes with key", "s3cret", allByteValues(258), encodedSecret},
		{"euro without key", "", []byte("€"), "3eC3"},
		{"euro with key", "s3cret", []byte("€"), "XncX"},
		{"four 0xFF", "", []byte{255, 255, 255, 255}, "!-W8s"},
		{"hello world", "", []byte("hello world"), "rZ!iCB=*gDdn]+"},
		{"hello world with key", "s3cret", []byte("hello world"), "k&68cwVE3}ypC5"},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			codec := r85.NewString(c.key)

			str := codec.EncodeToString(c.bin)
			if str != c.str {
				t.Errorf("EncodeToString() = %q, want %q", str, c.str)
			}

			got, err := codec.DecodeString(c.str)
			if err != nil {
				t.Fatalf("DecodeString() error = %v", err)
			}
			if !reflect.DeepEqual(got, c.bin) {
				t.Errorf("DecodeString() = %v, want %v", got, c.bin)
			}
		})
	}
}

// A group above 2^32-1 wraps around modulo 2^32.
func TestDecodeOverflow(t *testing.T) {
	t.Parallel()

	got, err := r85.Decode("uuuuu")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	want := []byte{0xc4, 0x0e, 0x78, 0x08}
	if !bytes.Equal(got, want) {
		t.Errorf("Decode() = % x, want % x", got, want)
	}
}

func TestEncodedLength(t *testing.T) {
	t.Parallel()

	if n := len(encodedNoKey); n != 323 {
		t.Errorf("len(encodedNoKey) = %d, want 323", n)
	}
}

func TestText(t *testing.T) {
	t.Parallel()

	if got := r85.Encode([]byte("€")); got != "3eC3" {
		t.Errorf("Encode(€) = %q, want 3eC3", got)
	}

	txt, err := r85.Default.DecodeToString("3eC3")
	if err != nil {
		t.Fatalf("DecodeToString() error = %v", err)
	}
	if txt != "€" {
		t.Errorf("DecodeToString(3eC3) = %q, want €", txt)
	}
}

func TestWrongKey(t *testing.T) {
	t.Parallel()

	bin := allByteValues(258)

	for _, key := range []string{"", "s3cre", "S3cret", "s3cret!"} {
		got, err := r85.NewString(key).DecodeString(encodedSecret)
		if err != nil {
			if !errors.Is(err, r85.ErrInvalidSymbol) {
				t.Errorf("key=%q: want ErrInvalidSymbol, got %v", key, err)
			}
			continue
		}
		if bytes.Equal(got, bin) {
			t.Errorf("key=%q: decoding with the wrong key reproduces the input", key)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(85))

	keys := []string{"", "s3cret", "k", "€", string(allByteValues(200)), "\x00\x00"}

	for _, key := range keys {
		codec := r85.NewString(key)

		for n := 0; n < 70; n++ {
			bin := make([]byte, n)
			rnd.Read(bin)

			str := codec.EncodeToBytes(bin)
			if len(str) != r85.EncodedLen(n) {
				t.Errorf("key=%q n=%d: len(encoded) = %d, want %d", key, n, len(str), r85.EncodedLen(n))
			}

			size, err := r85.DecodedLen(len(str))
			if err != nil || size != n {
				t.Errorf("key=%q: DecodedLen(%d) = %d, %v, want %d", key, len(str), size, err, n)
			}

			got, err := codec.DecodeBytes(str)
			if err != nil {
				t.Fatalf("key=%q n=%d: DecodeBytes() error = %v", key, n, err)
			}
			if !bytes.Equal(got, bin) {
				t.Errorf("key=%q n=%d: DecodeBytes() = %v, want %v", key, n, got, bin)
			}
		}
	}
}

func TestLengthFormulas(t *testing.T) {
	t.Parallel()

	cases := []struct {
		bin, str int
	}{
		{0, 0}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 7}, {8, 10}, {258, 323},
	}

	for _, c := range cases {
		if got := r85.EncodedLen(c.bin); got != c.str {
			t.Errorf("EncodedLen(%d) = %d, want %d", c.bin, got, c.str)
		}
		got, err := r85.DecodedLen(c.str)
		if err != nil || got != c.bin {
			t.Errorf("DecodedLen(%d) = %d, %v, want %d", c.str, got, err, c.bin)
		}
	}
}

func TestInvalidInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		key    string
		str    string
		want   error
		offset int64
	}{
		{"one symbol", "", "!", r85.ErrTrailingGroupLength, -1},
		{"six symbols", "", "!!!!!!", r85.ErrTrailingGroupLength, -1},
		{"space", "", "!! !!", r85.ErrInvalidSymbol, 2},
		{"tilde is not in default alphabet", "", "!!!!~", r85.ErrInvalidSymbol, 4},
		{"v is not in default alphabet", "", "3eCv", r85.ErrInvalidSymbol, 3},
		{"non ASCII", "", "!!\xe2", r85.ErrInvalidSymbol, 2},
		{"second group", "s3cret", "XncXXncX" + "\x7f", r85.ErrInvalidSymbol, 8},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := r85.NewString(c.key).DecodeString(c.str)
			if !errors.Is(err, c.want) {
				t.Fatalf("DecodeString(%q) error = %v, want %v", c.str, err, c.want)
			}
			if got != nil {
				t.Errorf("DecodeString(%q) returned partial output %v", c.str, got)
			}

			var se *r85.SymbolError
			if errors.As(err, &se) && se.Offset != c.offset {
				t.Errorf("SymbolError.Offset = %d, want %d", se.Offset, c.offset)
			}

			n, err := r85.NewString(c.key).Decode(make([]byte, 16), []byte(c.str))
			if n != 0 || !errors.Is(err, c.want) {
				t.Errorf("Decode() = %d, %v, want 0, %v", n, err, c.want)
			}
		})
	}
}

func TestAppendEncode(t *testing.T) {
	t.Parallel()

	dst := []byte("prefix:")
	dst = r85.Default.AppendEncode(dst, []byte("€"))
	if string(dst) != "prefix:3eC3" {
		t.Errorf("AppendEncode() = %q, want %q", dst, "prefix:3eC3")
	}
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	if got := r85.NewString("s3cret").EncodeToString(nil); got != "" {
		t.Errorf("EncodeToString(nil) = %q, want empty", got)
	}

	got, err := r85.Decode("")
	if err != nil || len(got) != 0 {
		t.Errorf("Decode(\"\") = %v, %v, want empty", got, err)
	}
}

func TestLargeInput(t *testing.T) {
	if testing.Short() {
		t.Skip("skip multi-megabyte round trip")
	}
	t.Parallel()

	const size = 8<<20 + 3 // not a multiple of 4

	bin := make([]byte, size)
	rand.New(rand.NewSource(1)).Read(bin)

	codec := r85.NewString("s3cret")
	str := codec.EncodeToBytes(bin)

	got, err := codec.DecodeBytes(str)
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	if !bytes.Equal(got, bin) {
		t.Error("large round trip differs")
	}
}

func BenchmarkEncode(b *testing.B) {
	bin := allByteValues(1 << 16)
	dst := make([]byte, r85.EncodedLen(len(bin)))
	codec := r85.NewString("s3cret")

	b.SetBytes(int64(len(bin)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		codec.Encode(dst, bin)
	}
}

func BenchmarkDecode(b *testing.B) {
	codec := r85.NewString("s3cret")
	str := codec.EncodeToBytes(allByteValues(1 << 16))
	dst := make([]byte, 1<<16)

	b.SetBytes(int64(len(str)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := codec.Decode(dst, str); err != nil {
			b.Fatal(err)
		}
	}
}
