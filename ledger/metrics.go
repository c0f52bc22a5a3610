// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package ledger

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess  = "success"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// Metrics counts ledger activity on a private registry
type Metrics struct {
	registry        *prometheus.Registry
	operations      *prometheus.CounterVec
	durations       *prometheus.HistogramVec
	journalFailures prometheus.Counter
}

// NewMetrics creates the ledger collectors on a fresh registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Metrics{
		registry: registry,
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ledger",
				Name:      "operations_total",
				Help:      "Ledger operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		durations: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "ledger",
				Name:      "operation_duration_seconds",
				Help:      "Ledger operation latency including persistence",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		journalFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "ledger",
				Name:      "journal_failures_total",
				Help:      "Committed operations whose history rows could not be written",
			},
		),
	}
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteToTextfile dumps the current values in the text exposition format
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) observe(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, outcome(err)).Inc()
	m.durations.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) journalFailure() {
	if m == nil {
		return
	}
	m.journalFailures.Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, ErrPersistence), errors.Is(err, ErrAccountNumbersExhausted):
		return outcomeError
	default:
		return outcomeRejected
	}
}
