// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import (
	"context"
	"sync"
)

// Latest makes sure only the most recent breach check gets to publish its result. Starting
// a new check cancels the one in flight; a stale check committing late is ignored.
type Latest struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	result Result
}

// Begin starts a new check and returns the context it must run with plus its token.
func (l *Latest) Begin(parent context.Context) (context.Context, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}

	ctx, cancel := context.WithCancel(parent)
	l.cancel = cancel
	l.seq++
	l.result = Result{}

	return ctx, l.seq
}

// Commit stores r if token is still the latest one and reports whether it did.
func (l *Latest) Commit(token uint64, r Result) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if token != l.seq {
		return false
	}

	l.result = r
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}

	return true
}

// Result is the last committed result, NotChecked while the latest check runs.
func (l *Latest) Result() Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.result
}
