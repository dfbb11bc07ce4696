// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package metrics exports hand-off outcomes as Prometheus counters.
//
// Counters are updated with atomic adds and never block, but the counter
// lookup and the extra cache traffic are not free. Instrument the
// non-real-time side of a hand-off (the control goroutine), not the audio
// callback.
//
//	m, err := metrics.New(prometheus.DefaultRegisterer, "param_edits")
//	if err != nil {
//	    return err
//	}
//	q := metrics.Wrap[Edit](handoff.NewPooledFIFO[Edit](256), m)
package metrics

import (
	"errors"
	"fmt"

	"code.hybscloud.com/handoff"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters of one named hand-off.
type Metrics struct {
	enqueued prometheus.Counter
	dequeued prometheus.Counter
	full     prometheus.Counter
	empty    prometheus.Counter
	failed   prometheus.Counter
}

// New creates the counters for the hand-off called name and registers them
// with reg. A nil reg skips registration.
func New(reg prometheus.Registerer, name string) (*Metrics, error) {
	if name == "" {
		return nil, errors.New("metrics: empty hand-off name")
	}

	counter := func(metric, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "handoff",
			Subsystem:   "queue",
			Name:        metric,
			ConstLabels: prometheus.Labels{"queue": name},
			Help:        help,
		})
	}
	m := &Metrics{
		enqueued: counter("enqueued_total", "Elements successfully enqueued"),
		dequeued: counter("dequeued_total", "Elements successfully dequeued"),
		full:     counter("full_total", "Enqueue attempts rejected because the queue was full"),
		empty:    counter("empty_total", "Dequeue attempts that found the queue empty"),
		failed:   counter("failed_total", "Operations that failed with an error other than would-block"),
	}
	if reg == nil {
		return m, nil
	}

	registered := make([]prometheus.Collector, 0, 5)
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			for _, r := range registered {
				reg.Unregister(r)
			}
			return nil, fmt.Errorf("metrics: register %q: %w", name, err)
		}
		registered = append(registered, c)
	}
	return m, nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.enqueued, m.dequeued, m.full, m.empty, m.failed}
}

// ObserveEnqueue records the outcome of enqueueing n elements.
func (m *Metrics) ObserveEnqueue(n int, err error) {
	switch {
	case err == nil:
		m.enqueued.Add(float64(n))
	case handoff.IsWouldBlock(err):
		m.full.Inc()
	default:
		m.failed.Inc()
	}
}

// ObserveDequeue records the outcome of dequeueing n elements.
func (m *Metrics) ObserveDequeue(n int, err error) {
	switch {
	case err == nil:
		m.dequeued.Add(float64(n))
	case handoff.IsWouldBlock(err):
		m.empty.Inc()
	default:
		m.failed.Inc()
	}
}

// Queue is a handoff.Queue that records every outcome in Metrics.
type Queue[T any] struct {
	q handoff.Queue[T]
	m *Metrics
}

// Wrap instruments q with m.
func Wrap[T any](q handoff.Queue[T], m *Metrics) *Queue[T] {
	return &Queue[T]{q: q, m: m}
}

// Enqueue forwards to the wrapped queue and records the outcome.
func (q *Queue[T]) Enqueue(elem *T) error {
	err := q.q.Enqueue(elem)
	q.m.ObserveEnqueue(1, err)
	return err
}

// Dequeue forwards to the wrapped queue and records the outcome.
func (q *Queue[T]) Dequeue() (T, error) {
	elem, err := q.q.Dequeue()
	q.m.ObserveDequeue(1, err)
	return elem, err
}

// Cap returns the wrapped queue's capacity.
func (q *Queue[T]) Cap() int {
	return q.q.Cap()
}

var _ handoff.Queue[int] = (*Queue[int])(nil)
