package ehr

import (
	"context"
	"testing"
	"time"

	"github.com/WebQx/webqx-sub005/internal/core/domain"
	"github.com/WebQx/webqx-sub005/internal/integration/audit"
	"github.com/WebQx/webqx-sub005/internal/integration/executor"
)

// instantClock eliminates real backoff delay in tests.
type instantClock struct {
	now time.Time
}

func (c *instantClock) Now() time.Time {
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

func (c *instantClock) Sleep(ctx context.Context, d time.Duration) error {
	return ctx.Err()
}

func testClient(t *testing.T) (*Client, *Store, *audit.Log) {
	t.Helper()
	log := audit.NewLog()
	clk := &instantClock{now: time.Unix(1700000000, 0)}
	ex, err := executor.New(executor.Config{MaxAttempts: 3, BaseDelay: time.Second}, log, clk, nil)
	if err != nil {
		t.Fatalf("executor.New failed: %v", err)
	}
	store := NewStore()
	return NewClient(ex, store), store, log
}

func TestGetPatient(t *testing.T) {
	client, _, _ := testClient(t)

	res := client.GetPatient(context.Background(), "patient-001", "dr-a")
	if !res.OK() {
		t.Fatalf("expected success, got %v", res.Err)
	}
	if res.Value.Name != "John Doe" {
		t.Errorf("Name = %q, want John Doe", res.Value.Name)
	}
	if res.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", res.Attempts)
	}
}

func TestGetPatient_MissingID(t *testing.T) {
	client, _, log := testClient(t)

	res := client.GetPatient(context.Background(), "", "dr-a")
	if res.OK() {
		t.Fatal("expected validation failure")
	}
	if res.Err.Code != domain.CodeValidationFailed {
		t.Errorf("code = %q, want %q", res.Err.Code, domain.CodeValidationFailed)
	}
	if res.Attempts != 0 || res.ElapsedMs != 0 {
		t.Errorf("preflight failure must report zero attempts and elapsed time, got %d/%d",
			res.Attempts, res.ElapsedMs)
	}
	if log.Len() != 0 {
		t.Errorf("preflight failures never reach the retry loop, audit len = %d", log.Len())
	}
}

func TestGetPatient_RecoversFromTransientFailures(t *testing.T) {
	client, store, log := testClient(t)
	store.Fail(2)

	res := client.GetPatient(context.Background(), "patient-001", "")
	if !res.OK() {
		t.Fatalf("expected success after retries, got %v", res.Err)
	}
	if res.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", res.Attempts)
	}
	if log.Len() != 3 {
		t.Errorf("audit entries = %d, want 3", log.Len())
	}
}

func TestGetPatient_ExhaustsOnPersistentFailure(t *testing.T) {
	client, store, _ := testClient(t)
	store.Fail(10)

	res := client.GetPatient(context.Background(), "patient-001", "")
	if res.OK() {
		t.Fatal("expected failure")
	}
	if !res.AttemptsExhausted {
		t.Error("AttemptsExhausted should be true")
	}
	if res.Err.Code != domain.CodeRequestFailed {
		t.Errorf("code = %q, want %q", res.Err.Code, domain.CodeRequestFailed)
	}
}

func TestListPatients(t *testing.T) {
	client, _, _ := testClient(t)

	res := client.ListPatients(context.Background(), "")
	if !res.OK() {
		t.Fatalf("expected success, got %v", res.Err)
	}
	if len(res.Value) != 2 {
		t.Errorf("patients = %d, want 2 seeded records", len(res.Value))
	}
}

func TestCreatePatient(t *testing.T) {
	client, _, _ := testClient(t)

	res := client.CreatePatient(context.Background(), &domain.Patient{Name: "Alice Roe", Age: 41}, "dr-b")
	if !res.OK() {
		t.Fatalf("expected success, got %v", res.Err)
	}
	if res.Value.ID == "" {
		t.Error("created patient should get an id")
	}
	if res.Value.Status != "active" {
		t.Errorf("Status = %q, want active", res.Value.Status)
	}

	got := client.GetPatient(context.Background(), res.Value.ID, "dr-b")
	if !got.OK() || got.Value.Name != "Alice Roe" {
		t.Errorf("round-trip failed: %+v", got)
	}
}

func TestCreatePatient_MissingName(t *testing.T) {
	client, _, _ := testClient(t)

	res := client.CreatePatient(context.Background(), &domain.Patient{}, "")
	if res.OK() || res.Err.Code != domain.CodeValidationFailed {
		t.Errorf("expected validation failure, got %+v", res)
	}
}

func TestCreateAppointment(t *testing.T) {
	client, _, _ := testClient(t)

	t.Run("in the past is rejected preflight", func(t *testing.T) {
		res := client.CreateAppointment(context.Background(), &domain.Appointment{
			PatientID:   "patient-001",
			ScheduledAt: time.Now().Add(-time.Hour),
		}, "")
		if res.OK() || res.Err.Code != domain.CodeValidationFailed {
			t.Errorf("expected validation failure, got %+v", res)
		}
		if res.Attempts != 0 {
			t.Errorf("Attempts = %d, want 0", res.Attempts)
		}
	})

	t.Run("future appointment is scheduled", func(t *testing.T) {
		res := client.CreateAppointment(context.Background(), &domain.Appointment{
			PatientID:   "patient-001",
			Provider:    "dr-b",
			ScheduledAt: time.Now().Add(24 * time.Hour),
		}, "")
		if !res.OK() {
			t.Fatalf("expected success, got %v", res.Err)
		}
		if res.Value.Status != domain.AppointmentScheduled {
			t.Errorf("Status = %s, want scheduled", res.Value.Status)
		}
	})
}

func TestCancelAppointment(t *testing.T) {
	client, _, _ := testClient(t)

	created := client.CreateAppointment(context.Background(), &domain.Appointment{
		PatientID:   "patient-002",
		ScheduledAt: time.Now().Add(time.Hour),
	}, "")
	if !created.OK() {
		t.Fatalf("setup failed: %v", created.Err)
	}

	res := client.CancelAppointment(context.Background(), created.Value.ID, "")
	if !res.OK() {
		t.Fatalf("expected success, got %v", res.Err)
	}
	if res.Value.Status != domain.AppointmentCancelled {
		t.Errorf("Status = %s, want cancelled", res.Value.Status)
	}
}

func TestSubmitIntakeForm(t *testing.T) {
	client, _, _ := testClient(t)

	t.Run("empty form is rejected", func(t *testing.T) {
		res := client.SubmitIntakeForm(context.Background(), &domain.IntakeForm{PatientID: "patient-001"}, "")
		if res.OK() || res.Err.Code != domain.CodeValidationFailed {
			t.Errorf("expected validation failure, got %+v", res)
		}
	})

	t.Run("valid form is stored", func(t *testing.T) {
		res := client.SubmitIntakeForm(context.Background(), &domain.IntakeForm{
			PatientID: "patient-001",
			Fields:    map[string]any{"allergies": "none"},
		}, "")
		if !res.OK() {
			t.Fatalf("expected success, got %v", res.Err)
		}
		if res.Value.ID == "" || res.Value.SubmittedAt.IsZero() {
			t.Errorf("form should get an id and timestamp, got %+v", res.Value)
		}
	})
}

func TestSyncPatientRecord(t *testing.T) {
	client, _, log := testClient(t)

	res := client.SyncPatientRecord(context.Background(), "patient-002")
	if !res.OK() {
		t.Fatalf("expected success, got %v", res.Err)
	}
	entries := log.Entries(1, "patient.sync")
	if len(entries) != 1 {
		t.Fatalf("audit entries for patient.sync = %d, want 1", len(entries))
	}
	if entries[0].ActorID != "scheduler" {
		t.Errorf("ActorID = %q, want scheduler", entries[0].ActorID)
	}
}
