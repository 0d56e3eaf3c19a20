// Copyright 2016 The Chihaya Authors. All rights reserved.
// Use of this source code is governed by the BSD 2-Clause license,
// which can be found in the LICENSE file.

// Package random generates random strings from an engine.Source.
package random

import (
	"math/rand"

	"github.com/chihaya/brng/engine"
)

// AlphaNumeric is an alphabet with all lower- and uppercase letters and
// numbers.
const AlphaNumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Hex is the lowercase hexadecimal alphabet.
const Hex = "0123456789abcdef"

// AlphaNumericString is a shorthand for String(src, l, AlphaNumeric).
func AlphaNumericString(src engine.Source, l int) string {
	return String(src, l, AlphaNumeric)
}

// String generates a random string of length l, containing only bytes from
// the alphabet using the random source src. Every byte of the alphabet is
// equally likely.
//
// String panics if the alphabet is empty and l > 0.
func String(src engine.Source, l int, alphabet string) string {
	if l <= 0 {
		return ""
	}
	if alphabet == "" {
		panic("random: empty alphabet")
	}

	r := rand.New(engine.NewRand(src))
	b := make([]byte, l)
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(b)
}
