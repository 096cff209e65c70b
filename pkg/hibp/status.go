// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"net/http"
	"sync/atomic"
	"time"
)

// Stats is a snapshot of the client counters.
type Stats struct {
	Requests         uint64
	CloudflareHits   uint64
	CloudflareMisses uint64
	CacheHits        uint64
	Failures         uint64
	AverageMillis    float64
}

type status struct {
	requests                   uint64
	cloudflareHits             uint64
	cloudflareMisses           uint64
	cloudflareRequestTimeTotal uint64
	cacheHits                  uint64
	failures                   uint64
	start                      time.Time
}

func newStatus() *status {
	return &status{start: time.Now()}
}

func (s *status) RequestComplete(res *http.Response, millis int64) {
	atomic.AddUint64(&s.cloudflareRequestTimeTotal, uint64(millis))
	atomic.AddUint64(&s.requests, 1)

	if cacheHit := res.Header.Get("CF-Cache-Status"); cacheHit == "HIT" {
		atomic.AddUint64(&s.cloudflareHits, 1)
	} else {
		atomic.AddUint64(&s.cloudflareMisses, 1)
	}
}

func (s *status) CacheHit() {
	atomic.AddUint64(&s.cacheHits, 1)
}

func (s *status) Failure() {
	atomic.AddUint64(&s.failures, 1)
}

func (s *status) snapshot() Stats {
	st := Stats{
		Requests:         atomic.LoadUint64(&s.requests),
		CloudflareHits:   atomic.LoadUint64(&s.cloudflareHits),
		CloudflareMisses: atomic.LoadUint64(&s.cloudflareMisses),
		CacheHits:        atomic.LoadUint64(&s.cacheHits),
		Failures:         atomic.LoadUint64(&s.failures),
	}

	if st.Requests > 0 {
		st.AverageMillis = float64(atomic.LoadUint64(&s.cloudflareRequestTimeTotal)) / float64(st.Requests)
	}

	return st
}

// LogSummary prints the counters collected since the client was created.
func (s *status) LogSummary() {
	st := s.snapshot()
	p := message.NewPrinter(language.English)

	log.Info().Msgf("made %s range requests in %v. Average response time %.2f ms",
		p.Sprintf("%d", st.Requests), time.Since(s.start).Round(time.Millisecond), st.AverageMillis)
	log.Debug().Msgf("cloudflare cache hits: %s, misses: %s. local cache hits: %s. failures: %s",
		p.Sprintf("%d", st.CloudflareHits), p.Sprintf("%d", st.CloudflareMisses),
		p.Sprintf("%d", st.CacheHits), p.Sprintf("%d", st.Failures))
}
