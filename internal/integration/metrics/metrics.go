package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OperationsTotal tracks record-system operations per outcome
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webqx_operations_total",
			Help: "Total number of record-system operations",
		},
		[]string{"operation", "status"},
	)

	// AttemptsTotal tracks individual attempts, including retries
	AttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webqx_operation_attempts_total",
			Help: "Total number of operation attempts including retries",
		},
		[]string{"operation"},
	)

	// OperationDuration tracks end-to-end operation latency
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "webqx_operation_duration_seconds",
			Help:    "Operation duration from first attempt to final outcome",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// SyncInterval tracks the most recently computed resync interval
	SyncInterval = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "webqx_sync_interval_ms",
			Help: "Last computed resync interval in milliseconds",
		},
		[]string{"category"},
	)

	// SyncCalculationsTotal tracks interval calculations per category
	SyncCalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webqx_sync_calculations_total",
			Help: "Total number of interval calculations",
		},
		[]string{"category", "criticality"},
	)
)
