package patient

import (
	"context"
	"errors"
	"fmt"

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

const patientCols = `mrn, patient_name, age, gender, assigned_doctor, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	err := scanPatientInto(p, r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patients (mrn, patient_name, age, gender, assigned_doctor)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+patientCols,
		p.MRN, p.Name, p.Age, p.Gender, p.AssignedDoctor,
	))
	if err != nil {
		if db.IsUniqueViolation(err, "patients_pkey") {
			return ErrDuplicateMRN
		}
		return fmt.Errorf("patient create: %w", err)
	}
	return nil
}

func (r *repoPG) GetByMRN(ctx context.Context, mrn string) (*Patient, error) {
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE mrn = $1`, mrn))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("patient get by mrn: %w", err)
	}
	return p, nil
}

// UpsertForAdmission pushes the existence check into the store: a single
// INSERT ... ON CONFLICT DO NOTHING either wins the row or observes the
// committed winner on the follow-up read. Re-admission keeps the existing
// demographics.
func (r *repoPG) UpsertForAdmission(ctx context.Context, p *Patient) (*Patient, bool, error) {
	inserted, err := scanPatient(r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patients (mrn, patient_name, age, gender, assigned_doctor)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (mrn) DO NOTHING
		RETURNING `+patientCols,
		p.MRN, p.Name, p.Age, p.Gender, p.AssignedDoctor,
	))
	if err == nil {
		return inserted, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("patient upsert: %w", err)
	}

	existing, err := r.GetByMRN(ctx, p.MRN)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *repoPG) SearchByName(ctx context.Context, term string, limit, offset int) ([]*Patient, int, error) {
	pattern := "%" + term + "%"

	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM patients WHERE patient_name ILIKE $1`, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("patient search count: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT p.mrn, p.patient_name, p.age, p.gender, p.assigned_doctor, p.created_at, p.updated_at
		FROM patients p
		LEFT JOIN visits v ON v.mrn = p.mrn
		WHERE p.patient_name ILIKE $1
		GROUP BY p.mrn
		ORDER BY MAX(v.admission_date) DESC NULLS LAST, p.mrn
		LIMIT $2 OFFSET $3`,
		pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("patient search: %w", err)
	}
	defer rows.Close()
	return collectPatients(rows, total)
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("patient list count: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM patients ORDER BY created_at DESC, mrn LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("patient list: %w", err)
	}
	defer rows.Close()
	return collectPatients(rows, total)
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	if err := scanPatientInto(&p, row); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPatientInto(p *Patient, row pgx.Row) error {
	return row.Scan(&p.MRN, &p.Name, &p.Age, &p.Gender, &p.AssignedDoctor, &p.CreatedAt, &p.UpdatedAt)
}

func collectPatients(rows pgx.Rows, total int) ([]*Patient, int, error) {
	var patients []*Patient
	for rows.Next() {
		var p Patient
		if err := scanPatientInto(&p, rows); err != nil {
			return nil, 0, err
		}
		patients = append(patients, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}
