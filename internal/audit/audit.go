// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package audit

import (
	"bufio"
	"context"
	"github.com/alvinbaena/pwd-strength/internal/util"
	"github.com/alvinbaena/pwd-strength/pkg/hibp"
	"github.com/alvinbaena/pwd-strength/pkg/strength"
	"github.com/jfcg/sorty/v2"
	"github.com/rs/zerolog/log"
	"github.com/thinhdanggroup/executor"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"io"
	"runtime"
	"sync"
)

// BreachChecker is the part of the range client an audit needs.
type BreachChecker interface {
	Check(ctx context.Context, password string) hibp.Result
}

// Summary aggregates an audit. It never holds a password.
type Summary struct {
	Total         int
	Buckets       map[strength.Bucket]int
	Breached      int
	Failed        int
	MinEntropy    float64
	MedianEntropy float64
	MaxEntropy    float64
}

// Auditor evaluates a list of candidate passwords, one per line, on a bounded pool.
type Auditor struct {
	checker     BreachChecker
	parallelism int

	mu        sync.Mutex
	entropies []float64
	summary   Summary
}

// New returns an Auditor. A nil checker skips the breach lookups. parallelism below 1
// defaults to four workers per logical processor.
func New(checker BreachChecker, parallelism int) *Auditor {
	return &Auditor{checker: checker, parallelism: parallelism}
}

func (a *Auditor) Run(ctx context.Context, in io.Reader) (Summary, error) {
	s := util.Stats()
	defer s()

	threads := a.parallelism
	if threads < 1 {
		threads = runtime.NumCPU() * 4
	}

	tasks, err := executor.New(executor.Config{
		ReqPerSeconds: 0,
		QueueSize:     2 * threads,
		NumWorkers:    threads,
	})
	if err != nil {
		return Summary{}, err
	}
	defer tasks.Close()

	a.entropies = a.entropies[:0]
	a.summary = Summary{Buckets: make(map[strength.Bucket]int)}

	log.Info().Msgf("auditing passwords with %d workers", threads)
	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if ctx.Err() != nil {
			break
		}

		pwd := scanner.Text()
		if pwd == "" {
			continue
		}

		if err = tasks.Publish(a.processLine, ctx, lineNo, pwd); err != nil {
			return Summary{}, err
		}
	}

	tasks.Wait()

	if err = scanner.Err(); err != nil {
		return Summary{}, err
	}
	if err = ctx.Err(); err != nil {
		return Summary{}, err
	}

	return a.finish(), nil
}

func (a *Auditor) processLine(ctx context.Context, lineNo int, password string) {
	estimate := strength.Evaluate(password)

	var breach hibp.Result
	if a.checker != nil {
		breach = a.checker.Check(ctx, password)
	}

	event := log.Info()
	if breach.Breached() || estimate.Bucket == strength.Weak {
		event = log.Warn()
	}
	event.Int("line", lineNo).
		Str("bucket", estimate.Bucket.String()).
		Float64("entropy", estimate.Entropy).
		Int("violations", len(estimate.Violations)).
		Str("breach", breach.Status.String()).
		Uint64("count", breach.Count).
		Msg("audited password")

	a.mu.Lock()
	defer a.mu.Unlock()

	a.entropies = append(a.entropies, estimate.Entropy)
	a.summary.Total++
	a.summary.Buckets[estimate.Bucket]++
	switch {
	case breach.Breached():
		a.summary.Breached++
	case breach.Status == hibp.Failed:
		a.summary.Failed++
	}
}

func (a *Auditor) finish() Summary {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := a.summary
	if n := len(a.entropies); n > 0 {
		sorty.SortSlice(a.entropies)
		out.MinEntropy = a.entropies[0]
		out.MaxEntropy = a.entropies[n-1]
		if n%2 == 1 {
			out.MedianEntropy = a.entropies[n/2]
		} else {
			out.MedianEntropy = (a.entropies[n/2-1] + a.entropies[n/2]) / 2
		}
	}

	return out
}

// Log prints the summary.
func (s Summary) Log() {
	p := message.NewPrinter(language.English)
	log.Info().Msgf("audited %s passwords: %s breached, %s could not be checked",
		p.Sprintf("%d", s.Total), p.Sprintf("%d", s.Breached), p.Sprintf("%d", s.Failed))
	log.Info().Msgf("weak: %d, fair: %d, good: %d, strong: %d",
		s.Buckets[strength.Weak], s.Buckets[strength.Fair], s.Buckets[strength.Good], s.Buckets[strength.Strong])
	log.Info().Msgf("entropy min %.1f, median %.1f, max %.1f bits", s.MinEntropy, s.MedianEntropy, s.MaxEntropy)
}
