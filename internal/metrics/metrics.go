// Package metrics declares the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SalesProcessed counts successfully recorded sales.
	SalesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gestock_sales_processed_total",
		Help: "Number of sales recorded since startup.",
	})

	// SyncAttempts counts cloud sync attempts by outcome.
	SyncAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gestock_sync_attempts_total",
		Help: "Number of cloud sync attempts, labelled by outcome.",
	}, []string{"outcome"})
)
