// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package generator

import (
	"fmt"
	"io"
)

const streamChunk = 64

// byteStream hands out bytes from a secure source and turns them into unbiased indexes.
type byteStream struct {
	src io.Reader
	buf []byte
	pos int
}

func newByteStream(src io.Reader, hint int) *byteStream {
	if hint < streamChunk {
		hint = streamChunk
	}
	return &byteStream{src: src, buf: make([]byte, hint), pos: hint}
}

func (s *byteStream) next() (byte, error) {
	if s.pos == len(s.buf) {
		if _, err := io.ReadFull(s.src, s.buf); err != nil {
			return 0, fmt.Errorf("reading random source: %w", err)
		}
		s.pos = 0
	}

	b := s.buf[s.pos]
	s.pos++
	return b, nil
}

// intn returns a uniform value in [0, n) for 0 < n <= 256. Bytes that would fall in the
// uneven tail of the modulo are thrown away and redrawn.
func (s *byteStream) intn(n int) (int, error) {
	if n <= 0 || n > 256 {
		return 0, fmt.Errorf("intn: %d out of range", n)
	}

	limit := 256 - 256%n
	for {
		b, err := s.next()
		if err != nil {
			return 0, err
		}
		if int(b) < limit {
			return int(b) % n, nil
		}
	}
}
