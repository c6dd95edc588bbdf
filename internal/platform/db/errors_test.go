package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "visits_one_open_per_mrn"}

	if !IsUniqueViolation(err, "visits_one_open_per_mrn") {
		t.Error("expected match on named constraint")
	}
	if !IsUniqueViolation(err, "") {
		t.Error("expected match with empty constraint filter")
	}
	if IsUniqueViolation(err, "patients_pkey") {
		t.Error("expected no match on a different constraint")
	}
	if IsUniqueViolation(errors.New("plain error"), "") {
		t.Error("expected no match for a non-pg error")
	}
}

func TestIsUniqueViolation_Wrapped(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "patients_pkey"}
	wrapped := fmt.Errorf("inserting patient: %w", pgErr)

	if !IsUniqueViolation(wrapped, "patients_pkey") {
		t.Error("expected match through error wrapping")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	if !IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("expected match for 23503")
	}
	if IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("expected no match for a unique violation")
	}
}

func TestIsCheckViolation(t *testing.T) {
	err := &pgconn.PgError{Code: "23514", ConstraintName: "visits_discharge_after_admission"}

	if !IsCheckViolation(err, "visits_discharge_after_admission") {
		t.Error("expected match on named check constraint")
	}
	if IsCheckViolation(err, "some_other_check") {
		t.Error("expected no match on a different constraint")
	}
}
