package roster

import "context"

// Repository reads visit-with-patient rows for the roster projection.
type Repository interface {
	ListRows(ctx context.Context, specialties []string, term string) ([]*Row, error)
}
