// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package website

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	handlerTemplate = "template"
	handlerRender   = "render"

	outcomeOK    = "ok"
	outcomeError = "error"
)

// Metrics tracks rendering requests served by the website.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stpl",
				Subsystem: "website",
				Name:      "requests_total",
				Help:      "Total number of rendering requests by handler and outcome",
			},
			[]string{"handler", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stpl",
				Subsystem: "website",
				Name:      "request_duration_seconds",
				Help:      "Time taken to serve rendering requests",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8), // 100µs to 1.6s
			},
			[]string{"handler"},
		),
	}

	registry.MustRegister(m.Requests, m.Duration)
	return m
}

func (m *Metrics) observe(handler, outcome string, start time.Time) {
	m.Requests.WithLabelValues(handler, outcome).Inc()
	m.Duration.WithLabelValues(handler).Observe(time.Since(start).Seconds())
}
