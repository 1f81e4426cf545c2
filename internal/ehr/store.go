// Package ehr provides the facade over the remote health record system.
// The Store stands in for the real backend; the Client wraps it with
// validation and resilient execution.
package ehr

import (
	"errors"
	"fmt"
	"sync"

	"github.com/WebQx/webqx-sub005/internal/core/domain"
)

// ErrUnavailable is the synthetic transport failure produced by
// injected outages.
var ErrUnavailable = errors.New("record system unavailable")

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store is an in-memory stand-in for the remote record system.
type Store struct {
	mu           sync.RWMutex
	patients     map[string]*domain.Patient
	appointments map[string]*domain.Appointment
	forms        map[string]*domain.IntakeForm
	failures     int
}

// NewStore creates a store seeded with sample records.
func NewStore() *Store {
	s := &Store{
		patients:     make(map[string]*domain.Patient),
		appointments: make(map[string]*domain.Appointment),
		forms:        make(map[string]*domain.IntakeForm),
	}
	for _, p := range []*domain.Patient{
		{ID: "patient-001", Name: "John Doe", Age: 35, Status: "active", LastVisit: "2024-01-15"},
		{ID: "patient-002", Name: "Jane Smith", Age: 28, Status: "active", LastVisit: "2024-01-20"},
	} {
		s.patients[p.ID] = p
	}
	return s
}

// Fail makes the next n store calls return ErrUnavailable. Used to
// exercise retry paths in tests and demos.
func (s *Store) Fail(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = n
}

func (s *Store) takeFailure() error {
	if s.failures > 0 {
		s.failures--
		return ErrUnavailable
	}
	return nil
}

func (s *Store) GetPatient(id string) (*domain.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	p, ok := s.patients[id]
	if !ok {
		return nil, fmt.Errorf("patient %s: %w", id, ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (s *Store) ListPatients() ([]*domain.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	out := make([]*domain.Patient, 0, len(s.patients))
	for _, p := range s.patients {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (s *Store) PutPatient(p *domain.Patient) (*domain.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	cp := *p
	s.patients[p.ID] = &cp
	return p, nil
}

func (s *Store) PutAppointment(a *domain.Appointment) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	cp := *a
	s.appointments[a.ID] = &cp
	return a, nil
}

func (s *Store) GetAppointment(id string) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	a, ok := s.appointments[id]
	if !ok {
		return nil, fmt.Errorf("appointment %s: %w", id, ErrNotFound)
	}
	cp := *a
	return &cp, nil
}

func (s *Store) PutIntakeForm(f *domain.IntakeForm) (*domain.IntakeForm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	cp := *f
	s.forms[f.ID] = &cp
	return f, nil
}
