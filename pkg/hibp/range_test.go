// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestDigest(t *testing.T) {
	if d := Digest("password"); d != "5BAA61E4C9B93F3F0682250B6CF8331B7EE68FD8" {
		t.Errorf("Unexpected digest %s", d)
	}
	if d := Digest(""); d != "DA39A3EE5E6B4B0D3255BFEF95601890AFD80709" {
		t.Errorf("Unexpected digest of empty string %s", d)
	}
}

func TestSplit_RoundTrip(t *testing.T) {
	for _, pwd := range []string{"", "password", "Tr0ub4dor&3xk9Q", "contraseña"} {
		digest := Digest(pwd)
		prefix, suffix := Split(digest)

		if len(prefix) != PrefixLen || len(suffix) != SuffixLen {
			t.Errorf("Split should give %d and %d characters, got %d and %d", PrefixLen, SuffixLen, len(prefix), len(suffix))
		}
		if prefix+suffix != digest {
			t.Errorf("Prefix and suffix should rebuild the digest")
		}
		if !ValidPrefix(prefix) {
			t.Errorf("Prefix %s should be valid", prefix)
		}
	}
}

func TestFindSuffix(t *testing.T) {
	body := []byte(strings.Join([]string{
		decoySuffix + ":3",
		"1E4C9B93F3F0682250B6CF8331B7EE68FD8:10434004",
		"1E4C9B93F3F0682250B6CF8331B7EE68FD9:nope",
		"",
		"garbage",
	}, "\r\n"))

	tests := []struct {
		suffix string
		want   uint64
	}{
		{decoySuffix, 3},
		{"1E4C9B93F3F0682250B6CF8331B7EE68FD8", 10434004},
		{"1E4C9B93F3F0682250B6CF8331B7EE68FD9", 0},
		{strings.ToLower(decoySuffix), 0},
		{"1E4C9B93F3F0682250B6CF8331B7EE68FD", 0},
		{"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", 0},
	}

	for _, tt := range tests {
		if got := FindSuffix(body, tt.suffix); got != tt.want {
			t.Errorf("FindSuffix(%s) should be %d, got %d", tt.suffix, tt.want, got)
		}
	}
}

func TestResult_JSON(t *testing.T) {
	tests := []struct {
		result Result
		want   string
	}{
		{Count(3), `{"status":"checked","breached":true,"count":3}`},
		{Count(0), `{"status":"checked","breached":false,"count":0}`},
		{Errored(errors.New("boom")), `{"status":"error","breached":false,"error":"boom"}`},
		{Result{}, `{"status":"not_checked","breached":false}`},
	}

	for _, tt := range tests {
		buf, err := json.Marshal(tt.result)
		if err != nil {
			t.Fatalf("Should not fail marshalling: %s", err)
		}
		if string(buf) != tt.want {
			t.Errorf("Should marshal to %s, got %s", tt.want, buf)
		}
	}
}
