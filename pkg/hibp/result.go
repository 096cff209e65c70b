// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import (
	"encoding/json"
	"fmt"
)

// Status tells if a breach check reached a conclusion.
type Status int

const (
	NotChecked Status = iota
	Failed
	Checked
)

func (s Status) String() string {
	switch s {
	case NotChecked:
		return "not_checked"
	case Failed:
		return "error"
	case Checked:
		return "checked"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result of a breach check. Count only means something when Status is Checked: a failed
// check is never a zero count.
type Result struct {
	Status Status
	Count  uint64
	Err    error
}

// Count builds a successful result.
func Count(n uint64) Result {
	return Result{Status: Checked, Count: n}
}

// Errored builds a failed result.
func Errored(err error) Result {
	return Result{Status: Failed, Err: err}
}

// Breached is true only for a successful check that found the password.
func (r Result) Breached() bool {
	return r.Status == Checked && r.Count > 0
}

// Clean is true only for a successful check that did not find the password.
func (r Result) Clean() bool {
	return r.Status == Checked && r.Count == 0
}

func (r Result) MarshalJSON() ([]byte, error) {
	out := struct {
		Status   Status  `json:"status"`
		Breached bool    `json:"breached"`
		Count    *uint64 `json:"count,omitempty"`
		Error    string  `json:"error,omitempty"`
	}{Status: r.Status, Breached: r.Breached()}

	if r.Status == Checked {
		count := r.Count
		out.Count = &count
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}

	return json.Marshal(out)
}
