package patient

import (
	"context"
)

type Repository interface {
	// Create inserts a new patient row. Returns ErrDuplicateMRN when a row
	// with the same MRN already exists.
	Create(ctx context.Context, p *Patient) error

	// GetByMRN resolves a patient by its primary key. Returns ErrNotFound
	// when no such row exists.
	GetByMRN(ctx context.Context, mrn string) (*Patient, error)

	// UpsertForAdmission atomically creates the patient if absent, otherwise
	// returns the existing row untouched. The boolean reports whether a row
	// was created. This is the single indivisible create-or-fetch the
	// admission workflow relies on.
	UpsertForAdmission(ctx context.Context, p *Patient) (*Patient, bool, error)

	// SearchByName matches patients by case-insensitive substring on name,
	// ordered by most recent admission first (patients never admitted sort
	// last), then MRN.
	SearchByName(ctx context.Context, term string, limit, offset int) ([]*Patient, int, error)

	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
}
