package visit

import (
	"time"

	"github.com/google/uuid"
)

// Visit statuses. A visit is a two-state machine: it is created Open and
// transitions to Closed exactly once, when the discharge instant is recorded.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Visit maps to the visits table: one admission episode for a patient. The
// admission instant and specialty are immutable after creation; the only
// permitted mutation is the open -> closed transition performed by Close.
type Visit struct {
	ID            uuid.UUID  `db:"visit_id" json:"visit_id"`
	MRN           string     `db:"mrn" json:"mrn"`
	AdmittedAt    time.Time  `db:"admission_date" json:"admission_date"`
	DischargedAt  *time.Time `db:"discharge_date" json:"discharge_date,omitempty"`
	Specialty     string     `db:"specialty" json:"specialty"`
	DischargeNote *string    `db:"discharge_note" json:"discharge_note,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// IsOpen reports whether the patient is still admitted on this visit.
func (v *Visit) IsOpen() bool { return v.DischargedAt == nil }

// Status returns the lifecycle state derived from the discharge instant.
func (v *Visit) Status() string {
	if v.IsOpen() {
		return StatusOpen
	}
	return StatusClosed
}

// OpenVisit is a discharge candidate: an open visit joined with the
// patient's display name.
type OpenVisit struct {
	VisitID     uuid.UUID `db:"visit_id" json:"visit_id"`
	MRN         string    `db:"mrn" json:"mrn"`
	PatientName string    `db:"patient_name" json:"patient_name"`
	AdmittedAt  time.Time `db:"admission_date" json:"admission_date"`
	Specialty   string    `db:"specialty" json:"specialty"`
}
