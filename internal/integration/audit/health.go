package audit

import "github.com/WebQx/webqx-sub005/internal/core/domain"

// Status represents the aggregate health state of the integration.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// Success-rate thresholds for status classification, in percent.
const (
	unhealthyBelow = 80.0
	degradedBelow  = 95.0
)

// HealthSnapshot is a point-in-time view derived from the audit log.
// It is recomputed on demand and never stored.
type HealthSnapshot struct {
	Status                Status              `json:"status"`
	TotalOperations       int                 `json:"total_operations"`
	SuccessRate           float64             `json:"success_rate"`
	AverageResponseTimeMs float64             `json:"average_response_time_ms"`
	LastError             *domain.ErrorRecord `json:"last_error,omitempty"`
}

// Snapshot derives health metrics from the current log contents. An
// empty log reports a 100% success rate and a healthy status.
func (l *Log) Snapshot() HealthSnapshot {
	l.mu.RLock()
	entries := make([]Entry, len(l.entries))
	copy(entries, l.entries)
	l.mu.RUnlock()

	snap := HealthSnapshot{
		Status:          StatusHealthy,
		TotalOperations: len(entries),
		SuccessRate:     100,
	}
	if len(entries) == 0 {
		return snap
	}

	var successes int
	var successDurationMs int64
	for _, e := range entries {
		if e.Success {
			successes++
			successDurationMs += e.DurationMs
		} else if e.Error != nil {
			// Entries are in insertion order, so the last failure wins.
			snap.LastError = e.Error
		}
	}

	snap.SuccessRate = float64(successes) / float64(len(entries)) * 100
	if successes > 0 {
		snap.AverageResponseTimeMs = float64(successDurationMs) / float64(successes)
	}

	switch {
	case snap.SuccessRate < unhealthyBelow:
		snap.Status = StatusUnhealthy
	case snap.SuccessRate < degradedBelow:
		snap.Status = StatusDegraded
	}

	return snap
}
