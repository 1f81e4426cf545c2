package domain

import "time"

// Patient is a demographic record held by the remote record system.
type Patient struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Status    string `json:"status"`
	LastVisit string `json:"last_visit,omitempty"`
}

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
)

// Appointment is a scheduled encounter between a patient and a provider.
type Appointment struct {
	ID          string            `json:"id"`
	PatientID   string            `json:"patient_id"`
	Provider    string            `json:"provider"`
	ScheduledAt time.Time         `json:"scheduled_at"`
	Status      AppointmentStatus `json:"status"`
}

// IntakeForm holds free-form intake answers submitted for a patient.
type IntakeForm struct {
	ID          string         `json:"id"`
	PatientID   string         `json:"patient_id"`
	Fields      map[string]any `json:"fields"`
	SubmittedAt time.Time      `json:"submitted_at"`
}
