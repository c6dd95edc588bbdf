package visit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	// Create inserts a new open visit. Returns ErrOpenVisitExists when the
	// patient already has an open visit, ErrPatientNotFound when the MRN
	// does not reference a patient row.
	Create(ctx context.Context, v *Visit) error

	// GetByID returns a visit by primary key, or ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*Visit, error)

	// FindOpenByMRN returns the patient's single open visit, or ErrNotFound
	// when the patient is not currently admitted.
	FindOpenByMRN(ctx context.Context, mrn string) (*Visit, error)

	// Close transitions a visit from open to closed. The update is guarded
	// on the visit still being open, so of any number of concurrent closes
	// exactly one succeeds; the rest see ErrAlreadyClosed (or ErrNotFound
	// for an unknown id). A discharge instant before the admission instant
	// yields ErrDischargeBeforeAdmission.
	Close(ctx context.Context, id uuid.UUID, dischargedAt time.Time, note *string) (*Visit, error)

	// ListOpen returns open visits joined with patient names, most recent
	// admission first. A non-empty term filters by case-insensitive
	// substring on the patient name.
	ListOpen(ctx context.Context, term string, limit, offset int) ([]*OpenVisit, int, error)

	// HistoryByMRN returns all of a patient's visits, most recent admission
	// first, including the open visit if any.
	HistoryByMRN(ctx context.Context, mrn string) ([]*Visit, error)
}
