// Package specialty holds the closed set of clinical specialties a visit may
// be assigned to. Both admission validation and the roster grouping consume
// this single declaration.
package specialty

// The roster of inpatient specialties. Order is the display order used by
// the roster view.
var names = []string{
	"General Internal Medicine",
	"Respiratory Medicine",
	"Infectious Diseases",
	"Neurology",
	"Gastroenterology",
	"Rheumatology",
	"Hematology",
	"Thrombosis Medicine",
	"Immunology & Allergy",
}

var nameSet = func() map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}()

// Valid reports whether name is one of the enumerated specialties.
func Valid(name string) bool {
	return nameSet[name]
}

// Names returns the specialties in display order. The returned slice is a
// copy; callers may reorder it freely.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}
