// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import "strings"

// Specials is the fixed set of characters counted as the special class.
const Specials = "!@#$%^&*()_+-=[]{};':\",.<>/?|`~"

const (
	lowerSize = 26
	upperSize = 26
	digitSize = 10
)

// CharsetProfile tells which character classes are present in a password.
type CharsetProfile struct {
	HasLower   bool `json:"hasLower"`
	HasUpper   bool `json:"hasUpper"`
	HasDigit   bool `json:"hasDigit"`
	HasSpecial bool `json:"hasSpecial"`
}

// Profile scans the password once and flags every class found. Only ASCII letters and
// digits count towards their classes; anything outside Specials counts for nothing.
func Profile(password string) CharsetProfile {
	var p CharsetProfile
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			p.HasLower = true
		case r >= 'A' && r <= 'Z':
			p.HasUpper = true
		case r >= '0' && r <= '9':
			p.HasDigit = true
		case strings.ContainsRune(Specials, r):
			p.HasSpecial = true
		}
	}

	return p
}

// Size is the alphabet size implied by the profile. Never less than 1, so log2 stays defined.
func (p CharsetProfile) Size() int {
	size := 0
	if p.HasLower {
		size += lowerSize
	}
	if p.HasUpper {
		size += upperSize
	}
	if p.HasDigit {
		size += digitSize
	}
	if p.HasSpecial {
		size += len(Specials)
	}

	if size == 0 {
		return 1
	}

	return size
}

func CharsetSize(password string) int {
	return Profile(password).Size()
}
