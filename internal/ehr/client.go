package ehr

import (
	"context"
	"time"

	"github.com/WebQx/webqx-sub005/internal/core/domain"
	"github.com/WebQx/webqx-sub005/internal/integration/executor"
	"github.com/google/uuid"
)

// Client is the integration facade over the record system. Every call
// goes through the executor; field validation short-circuits before any
// attempt is made.
type Client struct {
	ex    *executor.Executor
	store *Store
}

// NewClient builds a facade over the given store.
func NewClient(ex *executor.Executor, store *Store) *Client {
	return &Client{ex: ex, store: store}
}

// GetPatient fetches a patient record by id.
func (c *Client) GetPatient(ctx context.Context, id, actorID string) domain.Result[*domain.Patient] {
	if id == "" {
		return executor.PreflightFailure[*domain.Patient](
			"patient.get", domain.CodeValidationFailed, "patient id is required")
	}
	op := domain.Operation{
		Target:  "patients/" + id,
		Verb:    domain.VerbRead,
		Name:    "patient.get",
		Subject: id,
	}
	return executor.Execute(ctx, c.ex, op, actorID, func(ctx context.Context) (*domain.Patient, error) {
		return c.store.GetPatient(id)
	})
}

// ListPatients fetches all patient records.
func (c *Client) ListPatients(ctx context.Context, actorID string) domain.Result[[]*domain.Patient] {
	op := domain.Operation{Target: "patients", Verb: domain.VerbRead, Name: "patient.list"}
	return executor.Execute(ctx, c.ex, op, actorID, func(ctx context.Context) ([]*domain.Patient, error) {
		return c.store.ListPatients()
	})
}

// CreatePatient registers a new patient record.
func (c *Client) CreatePatient(ctx context.Context, p *domain.Patient, actorID string) domain.Result[*domain.Patient] {
	if p == nil || p.Name == "" {
		return executor.PreflightFailure[*domain.Patient](
			"patient.create", domain.CodeValidationFailed, "patient name is required")
	}
	if p.ID == "" {
		p.ID = "patient-" + uuid.New().String()
	}
	if p.Status == "" {
		p.Status = "active"
	}
	op := domain.Operation{
		Target:  "patients",
		Verb:    domain.VerbCreate,
		Payload: map[string]any{"name": p.Name, "age": p.Age},
		Name:    "patient.create",
		Subject: p.ID,
	}
	return executor.Execute(ctx, c.ex, op, actorID, func(ctx context.Context) (*domain.Patient, error) {
		return c.store.PutPatient(p)
	})
}

// UpdatePatient replaces an existing patient record.
func (c *Client) UpdatePatient(ctx context.Context, p *domain.Patient, actorID string) domain.Result[*domain.Patient] {
	if p == nil || p.ID == "" {
		return executor.PreflightFailure[*domain.Patient](
			"patient.update", domain.CodeValidationFailed, "patient id is required")
	}
	op := domain.Operation{
		Target:  "patients/" + p.ID,
		Verb:    domain.VerbUpdate,
		Name:    "patient.update",
		Subject: p.ID,
	}
	return executor.Execute(ctx, c.ex, op, actorID, func(ctx context.Context) (*domain.Patient, error) {
		if _, err := c.store.GetPatient(p.ID); err != nil {
			return nil, err
		}
		return c.store.PutPatient(p)
	})
}

// CreateAppointment schedules an encounter. The scheduled time must be
// in the future.
func (c *Client) CreateAppointment(ctx context.Context, a *domain.Appointment, actorID string) domain.Result[*domain.Appointment] {
	if a == nil || a.PatientID == "" {
		return executor.PreflightFailure[*domain.Appointment](
			"appointment.create", domain.CodeValidationFailed, "patient id is required")
	}
	if !a.ScheduledAt.After(time.Now()) {
		return executor.PreflightFailure[*domain.Appointment](
			"appointment.create", domain.CodeValidationFailed, "scheduled time must be in the future")
	}
	if a.ID == "" {
		a.ID = "appt-" + uuid.New().String()
	}
	a.Status = domain.AppointmentScheduled
	op := domain.Operation{
		Target:  "appointments",
		Verb:    domain.VerbCreate,
		Name:    "appointment.create",
		Subject: a.PatientID,
	}
	return executor.Execute(ctx, c.ex, op, actorID, func(ctx context.Context) (*domain.Appointment, error) {
		return c.store.PutAppointment(a)
	})
}

// CancelAppointment marks a scheduled encounter as cancelled.
func (c *Client) CancelAppointment(ctx context.Context, id, actorID string) domain.Result[*domain.Appointment] {
	if id == "" {
		return executor.PreflightFailure[*domain.Appointment](
			"appointment.cancel", domain.CodeValidationFailed, "appointment id is required")
	}
	op := domain.Operation{
		Target: "appointments/" + id,
		Verb:   domain.VerbUpdate,
		Name:   "appointment.cancel",
	}
	return executor.Execute(ctx, c.ex, op, actorID, func(ctx context.Context) (*domain.Appointment, error) {
		a, err := c.store.GetAppointment(id)
		if err != nil {
			return nil, err
		}
		a.Status = domain.AppointmentCancelled
		return c.store.PutAppointment(a)
	})
}

// SubmitIntakeForm stores intake answers for a patient.
func (c *Client) SubmitIntakeForm(ctx context.Context, f *domain.IntakeForm, actorID string) domain.Result[*domain.IntakeForm] {
	if f == nil || f.PatientID == "" {
		return executor.PreflightFailure[*domain.IntakeForm](
			"intake.submit", domain.CodeValidationFailed, "patient id is required")
	}
	if len(f.Fields) == 0 {
		return executor.PreflightFailure[*domain.IntakeForm](
			"intake.submit", domain.CodeValidationFailed, "form has no fields")
	}
	if f.ID == "" {
		f.ID = "form-" + uuid.New().String()
	}
	if f.SubmittedAt.IsZero() {
		f.SubmittedAt = time.Now()
	}
	op := domain.Operation{
		Target:  "intake-forms",
		Verb:    domain.VerbCreate,
		Name:    "intake.submit",
		Subject: f.PatientID,
	}
	return executor.Execute(ctx, c.ex, op, actorID, func(ctx context.Context) (*domain.IntakeForm, error) {
		return c.store.PutIntakeForm(f)
	})
}

// SyncPatientRecord re-reads a patient record from the backend, the
// operation a scheduler would issue when a resync interval elapses.
func (c *Client) SyncPatientRecord(ctx context.Context, id string) domain.Result[*domain.Patient] {
	if id == "" {
		return executor.PreflightFailure[*domain.Patient](
			"patient.sync", domain.CodeValidationFailed, "patient id is required")
	}
	op := domain.Operation{
		Target:  "patients/" + id,
		Verb:    domain.VerbRead,
		Name:    "patient.sync",
		Subject: id,
	}
	return executor.Execute(ctx, c.ex, op, "scheduler", func(ctx context.Context) (*domain.Patient, error) {
		return c.store.GetPatient(id)
	})
}
