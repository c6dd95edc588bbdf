package visit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wardbook/wardbook/internal/domain/specialty"
)

// Errors returned by the visit ledger. Each maps to one distinct
// caller-facing message; none is ever folded into a generic failure.
var (
	ErrNotFound                 = errors.New("visit not found")
	ErrOpenVisitExists          = errors.New("patient is already admitted")
	ErrAlreadyClosed            = errors.New("visit has already been discharged")
	ErrDischargeBeforeAdmission = errors.New("discharge instant precedes admission instant")
	ErrInvalidSpecialty         = errors.New("specialty is not on the roster")
	ErrPatientNotFound          = errors.New("visit references an unknown patient")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// OpenVisit starts a new admission episode. The single-open-visit invariant
// is enforced by the store, not here; a conflicting open visit surfaces as
// ErrOpenVisitExists regardless of interleaving.
func (s *Service) OpenVisit(ctx context.Context, mrn, specialtyName string, admittedAt time.Time) (*Visit, error) {
	if mrn == "" {
		return nil, fmt.Errorf("mrn is required")
	}
	if !specialty.Valid(specialtyName) {
		return nil, ErrInvalidSpecialty
	}
	if admittedAt.IsZero() {
		admittedAt = time.Now().UTC()
	}

	v := &Visit{
		MRN:        mrn,
		AdmittedAt: admittedAt,
		Specialty:  specialtyName,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// CloseVisit records the discharge instant and optional note. Closing an
// already-closed visit fails rather than overwriting, so a concurrent
// discharge's note is never lost.
func (s *Service) CloseVisit(ctx context.Context, id uuid.UUID, dischargedAt time.Time, note *string) (*Visit, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("visit_id is required")
	}
	if dischargedAt.IsZero() {
		return nil, fmt.Errorf("discharge instant is required")
	}
	return s.repo.Close(ctx, id, dischargedAt, note)
}

func (s *Service) GetVisit(ctx context.Context, id uuid.UUID) (*Visit, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) FindOpenVisit(ctx context.Context, mrn string) (*Visit, error) {
	if mrn == "" {
		return nil, fmt.Errorf("mrn is required")
	}
	return s.repo.FindOpenByMRN(ctx, mrn)
}

func (s *Service) ListOpenVisits(ctx context.Context, term string, limit, offset int) ([]*OpenVisit, int, error) {
	return s.repo.ListOpen(ctx, term, limit, offset)
}

func (s *Service) History(ctx context.Context, mrn string) ([]*Visit, error) {
	if mrn == "" {
		return nil, fmt.Errorf("mrn is required")
	}
	return s.repo.HistoryByMRN(ctx, mrn)
}
