// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"github.com/alvinbaena/pwd-strength/pkg/hibp"
	"github.com/alvinbaena/pwd-strength/pkg/strength"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"strings"
)

// liveTips is how many tips fit in the one line summary.
const liveTips = 2

// Report is what a display surface gets: plain data, no markup, no password.
type Report struct {
	Strength strength.Estimate `json:"strength"`
	Meter    int               `json:"meter"`
	Tips     []string          `json:"tips"`
	Breach   hibp.Result       `json:"breach"`
}

func New(estimate strength.Estimate, breach hibp.Result) Report {
	return Report{
		Strength: estimate,
		Meter:    estimate.Bucket.Meter(),
		Tips:     estimate.Tips(),
		Breach:   breach,
	}
}

// BreachLine describes the breach result. A failed check reads differently from both
// outcomes of a successful one.
func BreachLine(r hibp.Result) string {
	switch {
	case r.Breached():
		p := message.NewPrinter(language.English)
		return p.Sprintf("Breached: found %d times (choose a new password).", r.Count)
	case r.Clean():
		return "Breached: not found."
	case r.Status == hibp.Failed:
		return "Breached: could not check (API error)."
	default:
		return "Breached: not checked."
	}
}

// Summary is the one line live info: entropy plus the first couple of tips.
func (r Report) Summary() string {
	line := fmt.Sprintf("Entropy: %.1f bits", r.Strength.Entropy)
	if len(r.Tips) == 0 {
		return line
	}

	shown := r.Tips
	more := ""
	if len(shown) > liveTips {
		shown = shown[:liveTips]
		more = " …"
	}

	return line + " • Tips: " + strings.Join(shown, " | ") + more
}

// Lines renders the full report for a console.
func (r Report) Lines() []string {
	lines := []string{
		fmt.Sprintf("Strength: %s (%d%%)", r.Strength.Bucket, r.Meter),
		fmt.Sprintf("Entropy: %.1f bits", r.Strength.Entropy),
		fmt.Sprintf("Length: %d", r.Strength.Length),
	}

	if g := r.Strength.Guess; g != nil {
		lines = append(lines, fmt.Sprintf("zxcvbn: score %d/4, crack time %s", g.Score, g.CrackTimeDisplay))
	}

	lines = append(lines, BreachLine(r.Breach))

	if len(r.Tips) > 0 {
		lines = append(lines, "How to improve:")
		for _, tip := range r.Tips {
			lines = append(lines, "  • "+tip)
		}
	}

	return lines
}
