package visit

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wardbook/wardbook/internal/platform/db"
)

// Constraint names from migrations/001_core.sql. The partial unique index is
// what makes invariant enforcement race-free: the store, not the
// application, decides whether a second open visit exists.
const (
	constraintOneOpenPerMRN   = "visits_one_open_per_mrn"
	constraintDischargeTiming = "visits_discharge_after_admission"
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

const visitCols = `visit_id, mrn, admission_date, discharge_date, specialty, discharge_note, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, v *Visit) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	err := scanVisitInto(v, r.conn(ctx).QueryRow(ctx, `
		INSERT INTO visits (visit_id, mrn, admission_date, specialty)
		VALUES ($1, $2, $3, $4)
		RETURNING `+visitCols,
		v.ID, v.MRN, v.AdmittedAt, v.Specialty,
	))
	if err != nil {
		switch {
		case db.IsUniqueViolation(err, constraintOneOpenPerMRN):
			return ErrOpenVisitExists
		case db.IsForeignKeyViolation(err):
			return ErrPatientNotFound
		}
		return fmt.Errorf("visit create: %w", err)
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Visit, error) {
	v, err := scanVisit(r.conn(ctx).QueryRow(ctx,
		`SELECT `+visitCols+` FROM visits WHERE visit_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("visit get: %w", err)
	}
	return v, nil
}

func (r *repoPG) FindOpenByMRN(ctx context.Context, mrn string) (*Visit, error) {
	v, err := scanVisit(r.conn(ctx).QueryRow(ctx,
		`SELECT `+visitCols+` FROM visits WHERE mrn = $1 AND discharge_date IS NULL`, mrn))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("visit find open: %w", err)
	}
	return v, nil
}

// Close performs the open -> closed transition as one guarded UPDATE. The
// WHERE clause refuses visits that are already closed, so a losing
// concurrent discharge cannot clobber the winner's note or timestamp.
func (r *repoPG) Close(ctx context.Context, id uuid.UUID, dischargedAt time.Time, note *string) (*Visit, error) {
	v, err := scanVisit(r.conn(ctx).QueryRow(ctx, `
		UPDATE visits
		SET discharge_date = $2, discharge_note = $3, updated_at = NOW()
		WHERE visit_id = $1 AND discharge_date IS NULL
		RETURNING `+visitCols,
		id, dischargedAt, note,
	))
	if err == nil {
		return v, nil
	}
	if db.IsCheckViolation(err, constraintDischargeTiming) {
		return nil, ErrDischargeBeforeAdmission
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("visit close: %w", err)
	}

	// No open row matched: distinguish an unknown visit from a visit that
	// was already closed (possibly by a concurrent discharge).
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, ErrAlreadyClosed
}

func (r *repoPG) ListOpen(ctx context.Context, term string, limit, offset int) ([]*OpenVisit, int, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	base := psql.Select().
		From("visits v").
		Join("patients p ON p.mrn = v.mrn").
		Where(sq.Eq{"v.discharge_date": nil})
	if term != "" {
		base = base.Where(sq.ILike{"p.patient_name": "%" + term + "%"})
	}

	countSQL, countArgs, err := base.Column("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("visit list open count sql: %w", err)
	}
	var total int
	if err := r.conn(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("visit list open count: %w", err)
	}

	dataSQL, dataArgs, err := base.
		Columns("v.visit_id", "v.mrn", "p.patient_name", "v.admission_date", "v.specialty").
		OrderBy("v.admission_date DESC", "v.mrn ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("visit list open sql: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, dataSQL, dataArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("visit list open: %w", err)
	}
	defer rows.Close()

	var open []*OpenVisit
	for rows.Next() {
		var ov OpenVisit
		if err := rows.Scan(&ov.VisitID, &ov.MRN, &ov.PatientName, &ov.AdmittedAt, &ov.Specialty); err != nil {
			return nil, 0, err
		}
		open = append(open, &ov)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return open, total, nil
}

func (r *repoPG) HistoryByMRN(ctx context.Context, mrn string) ([]*Visit, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+visitCols+` FROM visits WHERE mrn = $1 ORDER BY admission_date DESC, visit_id`, mrn)
	if err != nil {
		return nil, fmt.Errorf("visit history: %w", err)
	}
	defer rows.Close()

	var visits []*Visit
	for rows.Next() {
		var v Visit
		if err := scanVisitInto(&v, rows); err != nil {
			return nil, err
		}
		visits = append(visits, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return visits, nil
}

func scanVisit(row pgx.Row) (*Visit, error) {
	var v Visit
	if err := scanVisitInto(&v, row); err != nil {
		return nil, err
	}
	return &v, nil
}

func scanVisitInto(v *Visit, row pgx.Row) error {
	return row.Scan(&v.ID, &v.MRN, &v.AdmittedAt, &v.DischargedAt, &v.Specialty, &v.DischargeNote, &v.CreatedAt, &v.UpdatedAt)
}
