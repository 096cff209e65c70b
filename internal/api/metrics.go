// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"github.com/alvinbaena/pwd-strength/pkg/hibp"
	"github.com/alvinbaena/pwd-strength/pkg/strength"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"time"
)

const namespace = "pwdcheck"

// Metrics holds the API collectors. Labels never carry anything derived from a password
// beyond its bucket.
type Metrics struct {
	Evaluations   *prometheus.CounterVec
	BreachChecks  *prometheus.CounterVec
	BreachLatency prometheus.Histogram
	Generated     prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Total number of strength evaluations by bucket",
		}, []string{"bucket"}),
		BreachChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "breach_checks_total",
			Help:      "Total number of breach checks by outcome",
		}, []string{"outcome"}),
		BreachLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "breach_check_duration_seconds",
			Help:      "Time spent checking a password against the range API",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		Generated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generated_passwords_total",
			Help:      "Total number of generated passwords",
		}),
	}
}

func (m *Metrics) observeEstimate(e strength.Estimate) {
	m.Evaluations.WithLabelValues(e.Bucket.String()).Inc()
}

func (m *Metrics) observeBreach(r hibp.Result, elapsed time.Duration) {
	outcome := "clean"
	switch {
	case r.Breached():
		outcome = "breached"
	case r.Status == hibp.Failed:
		outcome = "error"
	}

	m.BreachChecks.WithLabelValues(outcome).Inc()
	m.BreachLatency.Observe(elapsed.Seconds())
}
