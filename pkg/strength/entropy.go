// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"math"
	"unicode/utf8"
)

// EntropyBits estimates the entropy of a password as length * log2(alphabet size), rounded
// to one decimal place.
//
// This is an upper bound that assumes every character was picked uniformly at random from
// the detected alphabet. Dictionary words, dates and keyboard patterns are not penalized
// here; RuleFeedback is the only place predictable structure is looked at.
func EntropyBits(password string) float64 {
	return entropyFor(utf8.RuneCountInString(password), CharsetSize(password))
}

func entropyFor(length int, charset int) float64 {
	bits := float64(length) * math.Log2(float64(charset))
	return math.Round(bits*10) / 10
}
