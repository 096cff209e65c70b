// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package generator

import (
	"crypto/rand"
	"errors"
	"io"
)

const (
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits    = "0123456789"
	Symbols   = "!@#$%^&*()_+-=[]{};:,.<>/?|`~"

	Alphabet = Lowercase + Uppercase + Digits + Symbols

	DefaultLength = 16
	MinLength     = 4
	MaxLength     = 256
)

var (
	ErrLengthTooShort = errors.New("password length must be at least 4")
	ErrLengthTooLong  = errors.New("password length must be at most 256")
)

// classes holds one entry per character class that every password must contain.
var classes = []string{Lowercase, Uppercase, Digits, Symbols}

// Generator builds random passwords from a cryptographically secure byte source.
type Generator struct {
	src io.Reader
}

// New returns a Generator reading from src. A nil src means crypto/rand.
func New(src io.Reader) *Generator {
	if src == nil {
		src = rand.Reader
	}
	return &Generator{src: src}
}

var defaultGenerator = New(nil)

// Generate returns a password of the given length using crypto/rand.
func Generate(length int) (string, error) {
	return defaultGenerator.Generate(length)
}

// Generate returns a password of exactly length characters holding at least one
// lowercase letter, uppercase letter, digit and symbol. One character of each class is
// picked first, the rest come from the whole Alphabet, and the result is shuffled so the
// guaranteed characters do not sit at the front.
func (g *Generator) Generate(length int) (string, error) {
	if length < MinLength {
		return "", ErrLengthTooShort
	}
	if length > MaxLength {
		return "", ErrLengthTooLong
	}

	stream := newByteStream(g.src, length)
	out := make([]byte, 0, length)

	for _, class := range classes {
		ch, err := pick(stream, class)
		if err != nil {
			return "", err
		}
		out = append(out, ch)
	}

	for len(out) < length {
		ch, err := pick(stream, Alphabet)
		if err != nil {
			return "", err
		}
		out = append(out, ch)
	}

	if err := shuffle(stream, out); err != nil {
		return "", err
	}

	return string(out), nil
}

func pick(stream *byteStream, charset string) (byte, error) {
	i, err := stream.intn(len(charset))
	if err != nil {
		return 0, err
	}
	return charset[i], nil
}

// shuffle is a Fisher-Yates shuffle driven by the same stream.
func shuffle(stream *byteStream, data []byte) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := stream.intn(i + 1)
		if err != nil {
			return err
		}
		data[i], data[j] = data[j], data[i]
	}
	return nil
}
