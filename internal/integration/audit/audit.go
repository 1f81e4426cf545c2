// Package audit keeps an append-only in-memory record of record-system
// operation attempts and derives aggregate health metrics from it.
package audit

import (
	"sort"
	"sync"
	"time"

	"github.com/WebQx/webqx-sub005/internal/core/domain"
	"github.com/google/uuid"
)

// Entry is an immutable record of one operation attempt's outcome.
type Entry struct {
	ID         string              `json:"id"`
	Timestamp  time.Time           `json:"timestamp"`
	Operation  string              `json:"operation"`
	Success    bool                `json:"success"`
	DurationMs int64               `json:"duration_ms"`
	ActorID    string              `json:"actor_id,omitempty"`
	SubjectID  string              `json:"subject_id,omitempty"`
	Error      *domain.ErrorRecord `json:"error,omitempty"`
	Metadata   map[string]any      `json:"metadata,omitempty"`
}

// Log is an append-only sequence of entries. Appends are serialized;
// reads work on a copy so they never observe a torn state. The log has
// no enforced cap; callers bound it externally if needed.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewLog creates an empty audit log.
func NewLog() *Log {
	return &Log{}
}

// Append records an entry, assigning an id and timestamp if unset, and
// returns the stored entry.
func (l *Log) Append(e Entry) Entry {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
	return e
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Entries returns up to limit entries, newest first, optionally
// filtered by operation name. Pure read, no mutation.
func (l *Log) Entries(limit int, operation string) []Entry {
	l.mu.RLock()
	matched := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		if operation != "" && e.Operation != operation {
			continue
		}
		matched = append(matched, e)
	}
	l.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}
