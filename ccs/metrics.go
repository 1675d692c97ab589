// SPDX-License-Identifier: MIT

package ccs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// groupsCalled counts groups by outcome: ok, skipped or error.
	groupsCalled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quiver_ccs_groups_total",
		Help: "Read groups processed, by outcome.",
	}, []string{"outcome"})

	readsInactive = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quiver_ccs_reads_inactive_total",
		Help: "Reads left out of scoring after the band check.",
	})

	groupSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quiver_ccs_group_seconds",
		Help:    "Wall time to call one group.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	})
)
