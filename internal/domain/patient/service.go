package patient

import (
	"context"
	"errors"
	"fmt"
)

// Errors returned by the patient registry.
var (
	ErrNotFound     = errors.New("patient not found")
	ErrDuplicateMRN = errors.New("a patient with this MRN already exists")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if err := validate(p); err != nil {
		return err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, mrn string) (*Patient, error) {
	if mrn == "" {
		return nil, fmt.Errorf("mrn is required")
	}
	return s.repo.GetByMRN(ctx, mrn)
}

// ResolveForAdmission returns the patient for the given MRN, creating the
// row if this is the first admission. Existing demographics are never
// overwritten by a re-admission.
func (s *Service) ResolveForAdmission(ctx context.Context, p *Patient) (*Patient, bool, error) {
	if err := validate(p); err != nil {
		return nil, false, err
	}
	return s.repo.UpsertForAdmission(ctx, p)
}

func (s *Service) SearchPatients(ctx context.Context, term string, limit, offset int) ([]*Patient, int, error) {
	if term == "" {
		return s.repo.List(ctx, limit, offset)
	}
	return s.repo.SearchByName(ctx, term, limit, offset)
}

func validate(p *Patient) error {
	if p.MRN == "" {
		return fmt.Errorf("mrn is required")
	}
	if p.Name == "" {
		return fmt.Errorf("patient_name is required")
	}
	if p.Age != nil && (*p.Age < 0 || *p.Age > 150) {
		return fmt.Errorf("age out of range: %d", *p.Age)
	}
	return nil
}
