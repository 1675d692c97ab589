// SPDX-License-Identifier: MIT

package refine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// mutationsTried counts mutations screened with FastIsFavorable.
	mutationsTried = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quiver_refine_mutations_tried_total",
		Help: "Total mutations screened during refinement",
	})

	// mutationsApplied counts mutations committed to a template.
	mutationsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quiver_refine_mutations_applied_total",
		Help: "Total mutations applied during refinement",
	})

	// refinements counts finished refinements by outcome.
	refinements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quiver_refine_total",
		Help: "Refinements by outcome",
	}, []string{"outcome"}) // "converged", "exhausted" or "error"

	// refineRounds tracks rounds per refinement.
	refineRounds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quiver_refine_rounds",
		Help:    "Rounds per refinement",
		Buckets: []float64{1, 2, 3, 5, 8, 13, 20, 40},
	})
)
