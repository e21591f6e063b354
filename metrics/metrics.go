// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

// Package metrics exposes the Prometheus collectors the dispatcher
// facade records against. Nothing below the facade (the request, verify,
// or cht packages) touches this package directly, the same ambient-stack
// placement rule the logging package follows.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles every collector the dispatcher updates. Callers that
// don't want global Prometheus state can construct their own registry
// and pass it to New.
type Metrics struct {
	BatchesBuilt     prometheus.Counter
	RequestsAppended prometheus.Counter
	VerifyOutcomes   *prometheus.CounterVec
	VerifyLatency    *prometheus.HistogramVec
}

// New registers and returns the dispatcher's collectors against reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BatchesBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "odr",
			Name:      "batches_built_total",
			Help:      "Number of request batches successfully finished by the builder.",
		}),
		RequestsAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "odr",
			Name:      "requests_appended_total",
			Help:      "Number of incomplete requests appended across all batches.",
		}),
		VerifyOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "odr",
			Name:      "verify_outcomes_total",
			Help:      "Verification outcomes by request kind and error class.",
		}, []string{"kind", "outcome"}),
		VerifyLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "odr",
			Name:      "verify_duration_seconds",
			Help:      "Per-request verifier latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
	}
	reg.MustRegister(m.BatchesBuilt, m.RequestsAppended, m.VerifyOutcomes, m.VerifyLatency)
	return m
}
