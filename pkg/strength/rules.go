// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const MinLength = 12

// Violation is a single failed rule. Violations are reported in check order, not by severity.
type Violation int

const (
	TooShort Violation = iota
	NoLowercase
	NoUppercase
	NoDigit
	NoSpecial
	RepeatedCharacter
	CommonSequence
)

var violationCodes = [...]string{
	TooShort:          "too_short",
	NoLowercase:       "no_lowercase",
	NoUppercase:       "no_uppercase",
	NoDigit:           "no_digit",
	NoSpecial:         "no_special",
	RepeatedCharacter: "repeated_character",
	CommonSequence:    "common_sequence",
}

var violationMessages = [...]string{
	TooShort:          fmt.Sprintf("Use at least %d characters.", MinLength),
	NoLowercase:       "Add lowercase letters.",
	NoUppercase:       "Add uppercase letters.",
	NoDigit:           "Add digits.",
	NoSpecial:         "Add special characters.",
	RepeatedCharacter: "Avoid repeating the same character 3+ times.",
	CommonSequence:    "Avoid common sequences or keyboard runs (e.g., 'abc', 'qwerty').",
}

func (v Violation) valid() bool {
	return v >= TooShort && v <= CommonSequence
}

// String returns the stable machine code of the violation.
func (v Violation) String() string {
	if !v.valid() {
		return fmt.Sprintf("violation(%d)", int(v))
	}
	return violationCodes[v]
}

// Message returns the advice shown to the user.
func (v Violation) Message() string {
	if !v.valid() {
		return ""
	}
	return violationMessages[v]
}

func (v Violation) MarshalText() ([]byte, error) {
	if !v.valid() {
		return nil, fmt.Errorf("unknown violation %d", int(v))
	}
	return []byte(v.String()), nil
}

// sequences are matched in 3 character windows, both forward and reversed.
var sequences = []string{
	"abcdefghijklmnopqrstuvwxyz",
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
	"0123456789",
	"0987654321",
}

// RuleFeedback runs every rule against the password and returns the ones that failed.
// All rules run regardless of earlier results and each contributes at most once.
func RuleFeedback(password string) []Violation {
	var out []Violation
	profile := Profile(password)

	if utf8.RuneCountInString(password) < MinLength {
		out = append(out, TooShort)
	}
	if !profile.HasLower {
		out = append(out, NoLowercase)
	}
	if !profile.HasUpper {
		out = append(out, NoUppercase)
	}
	if !profile.HasDigit {
		out = append(out, NoDigit)
	}
	if !profile.HasSpecial {
		out = append(out, NoSpecial)
	}
	if hasRepeat(password, 3) {
		out = append(out, RepeatedCharacter)
	}
	if hasSequence(strings.ToLower(password)) {
		out = append(out, CommonSequence)
	}

	return out
}

// hasRepeat reports whether any rune shows up n or more times in a row.
func hasRepeat(password string, n int) bool {
	run := 0
	var last rune
	for i, r := range password {
		if i > 0 && r == last {
			run++
		} else {
			run = 1
		}
		if run >= n {
			return true
		}
		last = r
	}

	return false
}

func hasSequence(lower string) bool {
	for _, seq := range sequences {
		for i := 0; i+3 <= len(seq); i++ {
			chunk := seq[i : i+3]
			if strings.Contains(lower, chunk) || strings.Contains(lower, reverse(chunk)) {
				return true
			}
		}
	}

	return false
}

// reverse only deals with the ASCII reference sequences.
func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
