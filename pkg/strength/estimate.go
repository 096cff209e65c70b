// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"github.com/nbutton23/zxcvbn-go"
	"unicode/utf8"
)

// Guess is the zxcvbn opinion of the password. It is informative only and never feeds
// into the bucket.
type Guess struct {
	Score            int     `json:"score"`
	CrackTime        float64 `json:"crackTime"`
	CrackTimeDisplay string  `json:"crackTimeDisplay"`
}

// Estimate is everything the estimator knows about a password. It holds no reference to
// the password itself.
type Estimate struct {
	Length     int            `json:"length"`
	Charset    CharsetProfile `json:"charset"`
	Alphabet   int            `json:"alphabet"`
	Entropy    float64        `json:"entropy"`
	Violations []Violation    `json:"violations"`
	Bucket     Bucket         `json:"bucket"`
	Guess      *Guess         `json:"guess,omitempty"`
}

// Evaluate runs the whole estimator. It is a total function: any string, including the
// empty one, yields an Estimate.
func Evaluate(password string) Estimate {
	profile := Profile(password)
	length := utf8.RuneCountInString(password)
	entropy := entropyFor(length, profile.Size())
	violations := RuleFeedback(password)

	e := Estimate{
		Length:     length,
		Charset:    profile,
		Alphabet:   profile.Size(),
		Entropy:    entropy,
		Violations: violations,
		Bucket:     Classify(entropy, len(violations)),
	}

	// zxcvbn indexes into its match table by length - 1
	if length > 0 {
		m := zxcvbn.PasswordStrength(password, nil)
		e.Guess = &Guess{
			Score:            m.Score,
			CrackTime:        m.CrackTime,
			CrackTimeDisplay: m.CrackTimeDisplay,
		}
	}

	return e
}

// Tips returns the advice messages of the violations, in order.
func (e Estimate) Tips() []string {
	tips := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		tips = append(tips, v.Message())
	}
	return tips
}
