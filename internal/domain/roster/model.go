// Package roster projects the visit ledger into the per-specialty ward
// view: every specialty with its active and discharged patients.
package roster

import (
	"time"

	"github.com/google/uuid"
)

// Row is one visit joined with its patient, as shown on the roster.
type Row struct {
	VisitID        uuid.UUID  `db:"visit_id" json:"visit_id"`
	MRN            string     `db:"mrn" json:"mrn"`
	PatientName    string     `db:"patient_name" json:"patient_name"`
	Age            *int       `db:"age" json:"age,omitempty"`
	Gender         *string    `db:"gender" json:"gender,omitempty"`
	AssignedDoctor *string    `db:"assigned_doctor" json:"assigned_doctor,omitempty"`
	Specialty      string     `db:"specialty" json:"specialty"`
	AdmittedAt     time.Time  `db:"admission_date" json:"admitted_at"`
	DischargedAt   *time.Time `db:"discharge_date" json:"discharged_at,omitempty"`
	DischargeNote  *string    `db:"discharge_note" json:"discharge_note,omitempty"`
}

// SortBy values accepted by the roster view.
const (
	SortByPatientName   = "patient_name"
	SortByAdmissionDate = "admission_date"
	SortByDischargeDate = "discharge_date"
)

// Params selects and orders the roster. Zero values mean: all specialties,
// no name filter, admission date descending.
type Params struct {
	Specialties []string
	SearchTerm  string
	SortBy      string
	SortOrder   string // "asc" or "desc"
}

// SpecialtyGroup is one specialty's partition of the roster.
type SpecialtyGroup struct {
	Active     []*Row `json:"active"`
	Discharged []*Row `json:"discharged"`
}

// View maps specialty name to its group. Every requested specialty is
// present even when both partitions are empty.
type View map[string]*SpecialtyGroup
