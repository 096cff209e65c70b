// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestCharsetSize(t *testing.T) {
	tests := []struct {
		password string
		want     int
	}{
		{"", 1},
		{"     ", 1},
		{"éüß", 1},
		{"abc", 26},
		{"ABC", 26},
		{"123", 10},
		{"!?", len(Specials)},
		{"aB", 52},
		{"aB1", 62},
		{"aB1~", 93},
		{"a b", 26},
	}

	for _, tt := range tests {
		if got := CharsetSize(tt.password); got != tt.want {
			t.Errorf("CharsetSize(%q) should be %d, got %d", tt.password, tt.want, got)
		}
	}
}

func TestCharsetSize_Monotonic(t *testing.T) {
	steps := []string{"password", "passwordX", "passwordX9", "passwordX9#"}
	last := 0
	for _, s := range steps {
		size := CharsetSize(s)
		if size < last {
			t.Errorf("Adding a class to %q should not shrink the charset (%d < %d)", s, size, last)
		}
		last = size
	}
}

func TestSpecials(t *testing.T) {
	if len(Specials) != 31 {
		t.Errorf("Special set should have 31 characters, has %d", len(Specials))
	}
}

func TestEntropyBits(t *testing.T) {
	if got := EntropyBits(""); got != 0 {
		t.Errorf("Empty password should have 0 bits, got %v", got)
	}

	tests := []struct {
		password string
		want     float64
	}{
		{"a", 4.7},
		{"aaaaaaaaaaaa", 56.4},
		{"Tr0ub4dor&3xk9Q", 98.1},
		{"🔥🔥🔥🔥", 0},
	}

	for _, tt := range tests {
		got := EntropyBits(tt.password)
		if got != tt.want {
			t.Errorf("EntropyBits(%q) should be %v, got %v", tt.password, tt.want, got)
		}
		if got < 0 {
			t.Errorf("EntropyBits(%q) should never be negative", tt.password)
		}
	}
}

func TestRuleFeedback(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     []Violation
	}{
		{"empty", "", []Violation{TooShort, NoLowercase, NoUppercase, NoDigit, NoSpecial}},
		{"all rules pass", "Tr0ub4dor&3xk9Q", nil},
		{"repeated lowercase", "aaaaaaaaaaaa", []Violation{NoUppercase, NoDigit, NoSpecial, RepeatedCharacter}},
		{"two repeats are fine", "Zq8#Zq8#aaZq", nil},
		{"alphabet run", "Xk9#mnoPw7$L", []Violation{CommonSequence}},
		{"reversed alphabet run", "Xk9#onmPw7$L", []Violation{CommonSequence}},
		{"keyboard run any case", "Xk9#QWEPw7$L", []Violation{CommonSequence}},
		{"reversed keyboard run", "Xk9#ewqPw7$L", []Violation{CommonSequence}},
		{"digit run", "Xk#Lp456Wz$m", []Violation{CommonSequence}},
		{"reversed digit run", "Xk#Lp654Wz$m", []Violation{CommonSequence}},
		{"short", "Xk9#mPw", []Violation{TooShort}},
		{"several issues", "abc111", []Violation{TooShort, NoUppercase, NoSpecial, RepeatedCharacter, CommonSequence}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RuleFeedback(tt.password)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RuleFeedback(%q) should be %v, got %v", tt.password, tt.want, got)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		entropy    float64
		violations int
		want       Bucket
	}{
		{80, 0, Strong},
		{80, 1, Strong},
		{79.9, 1, Good},
		{80, 2, Good},
		{60, 2, Good},
		{60, 3, Fair},
		{59.9, 0, Fair},
		{40, 7, Fair},
		{39.9, 0, Weak},
		{0, 5, Weak},
		{200, 7, Fair},
	}

	for _, tt := range tests {
		got := Classify(tt.entropy, tt.violations)
		if got != tt.want {
			t.Errorf("Classify(%v, %d) should be %s, got %s", tt.entropy, tt.violations, tt.want, got)
		}
		if again := Classify(tt.entropy, tt.violations); again != got {
			t.Errorf("Classify should be deterministic")
		}
	}
}

func TestEvaluate(t *testing.T) {
	e := Evaluate("Tr0ub4dor&3xk9Q")
	if e.Length != 15 {
		t.Errorf("Length should be 15, got %d", e.Length)
	}
	if len(e.Violations) != 0 {
		t.Errorf("Should have no violations, got %v", e.Violations)
	}
	if e.Entropy <= 60 {
		t.Errorf("Entropy should be above 60, got %v", e.Entropy)
	}
	if e.Bucket != Strong {
		t.Errorf("Bucket should be Strong, got %s", e.Bucket)
	}
	if e.Guess == nil {
		t.Errorf("Should have a zxcvbn guess")
	}

	e = Evaluate("aaaaaaaaaaaa")
	if e.Alphabet != 26 {
		t.Errorf("Alphabet should be 26, got %d", e.Alphabet)
	}
	// 56.4 bits clears the Fair threshold even with four violations
	if e.Bucket != Fair {
		t.Errorf("Bucket should be Fair, got %s", e.Bucket)
	}

	e = Evaluate("")
	if e.Entropy != 0 || e.Bucket != Weak || e.Guess != nil {
		t.Errorf("Empty password should be a Weak 0 bit estimate without a guess, got %+v", e)
	}
	if len(e.Tips()) != len(e.Violations) {
		t.Errorf("Every violation should have a tip")
	}
}

func TestEstimate_JSON(t *testing.T) {
	buf, err := json.Marshal(Evaluate("abc"))
	if err != nil {
		t.Fatalf("Should not fail marshalling: %s", err)
	}

	var out map[string]interface{}
	if err = json.Unmarshal(buf, &out); err != nil {
		t.Fatalf("Should not fail unmarshalling: %s", err)
	}

	if out["bucket"] != "Weak" {
		t.Errorf("Bucket should be encoded by name, got %v", out["bucket"])
	}
	violations, ok := out["violations"].([]interface{})
	if !ok || len(violations) == 0 || violations[0] != "too_short" {
		t.Errorf("Violations should be encoded by code, got %v", out["violations"])
	}
}

func TestViolation_Message(t *testing.T) {
	for v := TooShort; v <= CommonSequence; v++ {
		if v.Message() == "" {
			t.Errorf("Violation %s should have a message", v)
		}
	}
	if Violation(42).Message() != "" {
		t.Errorf("Unknown violations should have no message")
	}
}
