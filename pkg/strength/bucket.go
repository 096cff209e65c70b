// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import "fmt"

// Bucket is the coarse strength shown to the user.
type Bucket int

const (
	Weak Bucket = iota
	Fair
	Good
	Strong
)

const (
	strongEntropy    = 80
	strongViolations = 1
	goodEntropy      = 60
	goodViolations   = 2
	fairEntropy      = 40
)

var bucketNames = [...]string{Weak: "Weak", Fair: "Fair", Good: "Good", Strong: "Strong"}

// Classify maps an entropy estimate and a violation count to a bucket. The rules are
// checked from the strongest down and the first one that matches wins.
func Classify(entropy float64, violations int) Bucket {
	switch {
	case entropy >= strongEntropy && violations <= strongViolations:
		return Strong
	case entropy >= goodEntropy && violations <= goodViolations:
		return Good
	case entropy >= fairEntropy:
		return Fair
	default:
		return Weak
	}
}

func (b Bucket) String() string {
	if b < Weak || b > Strong {
		return fmt.Sprintf("bucket(%d)", int(b))
	}
	return bucketNames[b]
}

// Meter is the fill percentage of the strength meter for the bucket.
func (b Bucket) Meter() int {
	switch b {
	case Strong:
		return 100
	case Good:
		return 75
	case Fair:
		return 50
	default:
		return 25
	}
}

func (b Bucket) MarshalText() ([]byte, error) {
	if b < Weak || b > Strong {
		return nil, fmt.Errorf("unknown bucket %d", int(b))
	}
	return []byte(b.String()), nil
}
