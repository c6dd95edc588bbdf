package roster

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wardbook/wardbook/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ListRows fetches every visit joined with its patient, optionally limited
// to a set of specialties and a case-insensitive patient-name substring.
// Ordering is left to the in-memory view so the two partitions share one
// comparator.
func (r *repoPG) ListRows(ctx context.Context, specialties []string, term string) ([]*Row, error) {
	q := psql.Select(
		"v.visit_id", "v.mrn", "p.patient_name", "p.age", "p.gender",
		"p.assigned_doctor", "v.specialty", "v.admission_date",
		"v.discharge_date", "v.discharge_note",
	).
		From("visits v").
		Join("patients p ON p.mrn = v.mrn")

	if len(specialties) > 0 {
		q = q.Where(sq.Eq{"v.specialty": specialties})
	}
	if term != "" {
		q = q.Where(sq.ILike{"p.patient_name": "%" + term + "%"})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building roster query: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("listing roster rows: %w", err)
	}
	defer rows.Close()

	var out []*Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(
			&row.VisitID, &row.MRN, &row.PatientName, &row.Age, &row.Gender,
			&row.AssignedDoctor, &row.Specialty, &row.AdmittedAt,
			&row.DischargedAt, &row.DischargeNote,
		); err != nil {
			return nil, fmt.Errorf("scanning roster row: %w", err)
		}
		out = append(out, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading roster rows: %w", err)
	}
	return out, nil
}
