package audit

import (
	"fmt"
	"testing"
	"time"

	"github.com/WebQx/webqx-sub005/internal/core/domain"
)

func TestAppend_FillsDefaults(t *testing.T) {
	log := NewLog()

	stored := log.Append(Entry{Operation: "patient.get", Success: true})

	if stored.ID == "" {
		t.Error("Append should assign an id")
	}
	if stored.Timestamp.IsZero() {
		t.Error("Append should assign a timestamp")
	}
	if log.Len() != 1 {
		t.Errorf("Len = %d, want 1", log.Len())
	}
}

func TestEntries_FilterLimitOrder(t *testing.T) {
	log := NewLog()
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		op := "patient.get"
		if i%2 == 1 {
			op = "patient.sync"
		}
		log.Append(Entry{
			ID:        fmt.Sprintf("e%d", i),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Operation: op,
			Success:   true,
		})
	}

	t.Run("newest first", func(t *testing.T) {
		got := log.Entries(0, "")
		if len(got) != 6 {
			t.Fatalf("len = %d, want 6", len(got))
		}
		if got[0].ID != "e5" || got[5].ID != "e0" {
			t.Errorf("order = %s..%s, want e5..e0", got[0].ID, got[5].ID)
		}
	})

	t.Run("operation filter", func(t *testing.T) {
		got := log.Entries(0, "patient.sync")
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
		for _, e := range got {
			if e.Operation != "patient.sync" {
				t.Errorf("unexpected operation %q", e.Operation)
			}
		}
	})

	t.Run("limit truncates after sort", func(t *testing.T) {
		got := log.Entries(2, "")
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
		if got[0].ID != "e5" || got[1].ID != "e4" {
			t.Errorf("got %s,%s, want e5,e4", got[0].ID, got[1].ID)
		}
	})
}

func TestSnapshot_EmptyLog(t *testing.T) {
	snap := NewLog().Snapshot()

	if snap.Status != StatusHealthy {
		t.Errorf("Status = %s, want healthy", snap.Status)
	}
	if snap.SuccessRate != 100 {
		t.Errorf("SuccessRate = %v, want 100", snap.SuccessRate)
	}
	if snap.AverageResponseTimeMs != 0 {
		t.Errorf("AverageResponseTimeMs = %v, want 0", snap.AverageResponseTimeMs)
	}
	if snap.TotalOperations != 0 {
		t.Errorf("TotalOperations = %d, want 0", snap.TotalOperations)
	}
}

func TestSnapshot_StatusThresholds(t *testing.T) {
	tests := []struct {
		name      string
		successes int
		total     int
		want      Status
	}{
		{"79.99% is unhealthy", 7999, 10000, StatusUnhealthy},
		{"80.00% is degraded", 8000, 10000, StatusDegraded},
		{"94.99% is degraded", 9499, 10000, StatusDegraded},
		{"95.00% is healthy", 9500, 10000, StatusHealthy},
		{"100% is healthy", 10, 10, StatusHealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := NewLog()
			for i := 0; i < tt.total; i++ {
				e := Entry{Operation: "op", Success: i < tt.successes}
				if !e.Success {
					e.Error = domain.NewErrorRecord(domain.CodeRequestFailed, "boom", "op", nil)
				}
				log.Append(e)
			}

			snap := log.Snapshot()
			if snap.Status != tt.want {
				t.Errorf("Status = %s, want %s (rate %.2f)", snap.Status, tt.want, snap.SuccessRate)
			}
		})
	}
}

func TestSnapshot_AveragesAndLastError(t *testing.T) {
	log := NewLog()
	log.Append(Entry{Operation: "op", Success: true, DurationMs: 100})
	log.Append(Entry{Operation: "op", Success: false, DurationMs: 5000,
		Error: domain.NewErrorRecord(domain.CodeRequestFailed, "first failure", "op", nil)})
	log.Append(Entry{Operation: "op", Success: true, DurationMs: 300})
	log.Append(Entry{Operation: "op", Success: false, DurationMs: 9000,
		Error: domain.NewErrorRecord(domain.CodeRequestFailed, "second failure", "op", nil)})

	snap := log.Snapshot()

	// Average is over successful entries only.
	if snap.AverageResponseTimeMs != 200 {
		t.Errorf("AverageResponseTimeMs = %v, want 200", snap.AverageResponseTimeMs)
	}
	if snap.SuccessRate != 50 {
		t.Errorf("SuccessRate = %v, want 50", snap.SuccessRate)
	}
	if snap.LastError == nil || snap.LastError.Message != "second failure" {
		t.Errorf("LastError = %+v, want the most recent failure", snap.LastError)
	}
	if snap.Status != StatusUnhealthy {
		t.Errorf("Status = %s, want unhealthy", snap.Status)
	}
}
