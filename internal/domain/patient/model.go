package patient

import (
	"time"
)

// Patient maps to the patients table. The MRN is the primary key and never
// changes once assigned; a patient row is created on first admission and is
// never deleted.
type Patient struct {
	MRN            string    `db:"mrn" json:"mrn"`
	Name           string    `db:"patient_name" json:"patient_name"`
	Age            *int      `db:"age" json:"age,omitempty"`
	Gender         *string   `db:"gender" json:"gender,omitempty"`
	AssignedDoctor *string   `db:"assigned_doctor" json:"assigned_doctor,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
