package roster

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/wardbook/wardbook/internal/domain/specialty"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// BuildView assembles the per-specialty roster. Every requested specialty
// (all nine when none are named) appears in the result with its visits
// split into active and discharged, both partitions ordered by the same
// comparator. The union of the two partitions across all groups is exactly
// the filtered visit set; no row is dropped or duplicated.
func (s *Service) BuildView(ctx context.Context, p Params) (View, error) {
	if err := normalize(&p); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListRows(ctx, p.Specialties, p.SearchTerm)
	if err != nil {
		return nil, err
	}

	view := make(View, len(p.Specialties))
	for _, name := range p.Specialties {
		view[name] = &SpecialtyGroup{Active: []*Row{}, Discharged: []*Row{}}
	}
	for _, row := range rows {
		group, ok := view[row.Specialty]
		if !ok {
			continue
		}
		if row.DischargedAt == nil {
			group.Active = append(group.Active, row)
		} else {
			group.Discharged = append(group.Discharged, row)
		}
	}

	for _, group := range view {
		sortRows(group.Active, p.SortBy, p.SortOrder)
		sortRows(group.Discharged, p.SortBy, p.SortOrder)
	}
	return view, nil
}

func normalize(p *Params) error {
	if len(p.Specialties) == 0 {
		p.Specialties = specialty.Names()
	} else {
		for _, name := range p.Specialties {
			if !specialty.Valid(name) {
				return fmt.Errorf("unknown specialty: %s", name)
			}
		}
	}

	switch p.SortBy {
	case "":
		p.SortBy = SortByAdmissionDate
	case SortByPatientName, SortByAdmissionDate, SortByDischargeDate:
	default:
		return fmt.Errorf("unknown sort field: %s", p.SortBy)
	}

	switch p.SortOrder {
	case "":
		p.SortOrder = "desc"
	case "asc", "desc":
	default:
		return fmt.Errorf("sort order must be asc or desc")
	}
	return nil
}

// sortRows orders rows by the chosen field, ties broken by MRN ascending so
// the ordering is total and stable across requests. Rows without a
// discharge date sort after dated ones when discharge_date is the key,
// whatever the direction.
func sortRows(rows []*Row, by, order string) {
	asc := order == "asc"
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var less, eq bool
		switch by {
		case SortByPatientName:
			an, bn := strings.ToLower(a.PatientName), strings.ToLower(b.PatientName)
			less, eq = an < bn, an == bn
		case SortByDischargeDate:
			switch {
			case a.DischargedAt == nil && b.DischargedAt == nil:
				eq = true
			case a.DischargedAt == nil:
				return false
			case b.DischargedAt == nil:
				return true
			default:
				less = a.DischargedAt.Before(*b.DischargedAt)
				eq = a.DischargedAt.Equal(*b.DischargedAt)
			}
		default: // admission_date
			less = a.AdmittedAt.Before(b.AdmittedAt)
			eq = a.AdmittedAt.Equal(b.AdmittedAt)
		}
		if eq {
			return a.MRN < b.MRN
		}
		if asc {
			return less
		}
		return !less
	})
}
