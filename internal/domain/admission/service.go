// Package admission implements the admit and discharge workflows that tie
// the patient registry to the visit ledger.
package admission

import (
	"context"
	"time"

	"github.com/wardbook/wardbook/internal/domain/patient"
	"github.com/wardbook/wardbook/internal/domain/visit"
)

// AdmitRequest carries the combined registration + admission form.
type AdmitRequest struct {
	MRN            string  `json:"mrn"`
	PatientName    string  `json:"patient_name"`
	Age            *int    `json:"age,omitempty"`
	Gender         *string `json:"gender,omitempty"`
	AssignedDoctor *string `json:"assigned_doctor,omitempty"`
	Specialty      string  `json:"specialty"`
	AdmittedAt     time.Time
}

// AdmissionResult reports what Admit did: the (possibly pre-existing)
// patient, the new open visit, and whether the registry row was created
// by this call.
type AdmissionResult struct {
	Patient        *patient.Patient `json:"patient"`
	Visit          *visit.Visit     `json:"visit"`
	PatientCreated bool             `json:"patient_created"`
}

type Service struct {
	patients *patient.Service
	visits   *visit.Service
}

func NewService(patients *patient.Service, visits *visit.Service) *Service {
	return &Service{patients: patients, visits: visits}
}

// Admit registers the patient if the MRN is new, then opens a visit. The
// steps are deliberately not wrapped in a transaction: a registry row with
// no visit is a valid state (it simply records the patient), while a visit
// without a registry row is ruled out by the ordering and the foreign key.
// A patient who already has an open visit is rejected with
// visit.ErrOpenVisitExists and no new registry row is rolled back.
func (s *Service) Admit(ctx context.Context, req AdmitRequest) (*AdmissionResult, error) {
	p := &patient.Patient{
		MRN:            req.MRN,
		Name:           req.PatientName,
		Age:            req.Age,
		Gender:         req.Gender,
		AssignedDoctor: req.AssignedDoctor,
	}
	p, created, err := s.patients.ResolveForAdmission(ctx, p)
	if err != nil {
		return nil, err
	}

	v, err := s.visits.OpenVisit(ctx, p.MRN, req.Specialty, req.AdmittedAt)
	if err != nil {
		return nil, err
	}

	return &AdmissionResult{Patient: p, Visit: v, PatientCreated: created}, nil
}

// Discharge closes the patient's open visit. Exactly one of two concurrent
// discharges for the same MRN succeeds; the other observes the visit
// already closed (or, if it lost the lookup race, not found).
func (s *Service) Discharge(ctx context.Context, mrn string, dischargedAt time.Time, note *string) (*visit.Visit, error) {
	open, err := s.visits.FindOpenVisit(ctx, mrn)
	if err != nil {
		return nil, err
	}
	return s.visits.CloseVisit(ctx, open.ID, dischargedAt, note)
}
