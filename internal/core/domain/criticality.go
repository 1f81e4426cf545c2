package domain

// Criticality is the tier determining how aggressively a data category
// is resynchronized.
type Criticality string

const (
	CriticalityCritical     Criticality = "critical"
	CriticalityNonEssential Criticality = "non_essential"
	CriticalityDefault      Criticality = "default"
)

// Priority ranks the subject of a sync decision.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)
