// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strings"
)

const (
	// PrefixLen is the number of hex characters sent to the range API. k-anonymity needs
	// the hash cut like this.
	PrefixLen = 5
	// SuffixLen is what stays local and gets matched against the range response.
	SuffixLen = 35
)

var prefixPattern = regexp.MustCompile(`^[0-9A-F]{5}$`)

// Digest returns the uppercase hexadecimal SHA1 of the UTF-8 password. SHA1 is what the
// Pwned Passwords API indexes by, not a choice made here.
func Digest(password string) string {
	sum := sha1.Sum([]byte(password))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// Split cuts a digest into the prefix that is sent and the suffix that is not.
func Split(digest string) (prefix string, suffix string) {
	return digest[:PrefixLen], digest[PrefixLen:]
}

// ValidPrefix reports if prefix is exactly five uppercase hex characters.
func ValidPrefix(prefix string) bool {
	return prefixPattern.MatchString(prefix)
}
