package patient

import (
	"context"
	"sort"
	"strings"
	"testing"
)

// -- Mock Repository --

type mockRepo struct {
	patients map[string]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[string]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	if _, ok := m.patients[p.MRN]; ok {
		return ErrDuplicateMRN
	}
	m.patients[p.MRN] = p
	return nil
}

func (m *mockRepo) GetByMRN(_ context.Context, mrn string) (*Patient, error) {
	p, ok := m.patients[mrn]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) UpsertForAdmission(_ context.Context, p *Patient) (*Patient, bool, error) {
	if existing, ok := m.patients[p.MRN]; ok {
		return existing, false, nil
	}
	m.patients[p.MRN] = p
	return p, true, nil
}

func (m *mockRepo) SearchByName(_ context.Context, term string, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.patients {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(term)) {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MRN < result[j].MRN })
	return result, len(result), nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.patients {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MRN < result[j].MRN })
	return result, len(result), nil
}

func newTestService() *Service {
	return NewService(newMockRepo())
}

// -- Tests --

func TestCreatePatient(t *testing.T) {
	svc := newTestService()

	p := &Patient{MRN: "MRN001", Name: "Alice Smith"}
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.GetPatient(context.Background(), "MRN001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Alice Smith" {
		t.Errorf("expected Alice Smith, got %s", got.Name)
	}
}

func TestCreatePatient_MRNRequired(t *testing.T) {
	svc := newTestService()

	err := svc.CreatePatient(context.Background(), &Patient{Name: "No MRN"})
	if err == nil {
		t.Error("expected error for missing mrn")
	}
}

func TestCreatePatient_NameRequired(t *testing.T) {
	svc := newTestService()

	err := svc.CreatePatient(context.Background(), &Patient{MRN: "MRN001"})
	if err == nil {
		t.Error("expected error for missing name")
	}
}

func TestCreatePatient_DuplicateMRN(t *testing.T) {
	svc := newTestService()

	if err := svc.CreatePatient(context.Background(), &Patient{MRN: "MRN001", Name: "First"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := svc.CreatePatient(context.Background(), &Patient{MRN: "MRN001", Name: "Second"})
	if err != ErrDuplicateMRN {
		t.Errorf("expected ErrDuplicateMRN, got %v", err)
	}
}

func TestCreatePatient_AgeOutOfRange(t *testing.T) {
	svc := newTestService()

	age := 200
	err := svc.CreatePatient(context.Background(), &Patient{MRN: "MRN001", Name: "Old", Age: &age})
	if err == nil {
		t.Error("expected error for out-of-range age")
	}
}

func TestGetPatient_NotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.GetPatient(context.Background(), "MRN404")
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveForAdmission_CreatesWhenAbsent(t *testing.T) {
	svc := newTestService()

	p, created, err := svc.ResolveForAdmission(context.Background(), &Patient{MRN: "MRN001", Name: "Alice Smith"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected created=true for a new MRN")
	}
	if p.MRN != "MRN001" {
		t.Errorf("expected MRN001, got %s", p.MRN)
	}
}

func TestResolveForAdmission_KeepsExistingDemographics(t *testing.T) {
	svc := newTestService()

	age := 40
	if err := svc.CreatePatient(context.Background(), &Patient{MRN: "MRN001", Name: "Alice Smith", Age: &age}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	newAge := 41
	p, created, err := svc.ResolveForAdmission(context.Background(), &Patient{MRN: "MRN001", Name: "Alicia Smith", Age: &newAge})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected created=false for an existing MRN")
	}
	if p.Name != "Alice Smith" {
		t.Errorf("expected existing name retained, got %s", p.Name)
	}
	if p.Age == nil || *p.Age != 40 {
		t.Error("expected existing age retained")
	}
}

func TestSearchPatients_EmptyTermListsAll(t *testing.T) {
	svc := newTestService()

	svc.CreatePatient(context.Background(), &Patient{MRN: "MRN001", Name: "Alice Smith"})
	svc.CreatePatient(context.Background(), &Patient{MRN: "MRN002", Name: "Bob Jones"})

	result, total, err := svc.SearchPatients(context.Background(), "", 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(result) != 2 {
		t.Errorf("expected 2 patients, got %d (total %d)", len(result), total)
	}
}

func TestSearchPatients_CaseInsensitive(t *testing.T) {
	svc := newTestService()

	svc.CreatePatient(context.Background(), &Patient{MRN: "MRN001", Name: "Alice Smith"})
	svc.CreatePatient(context.Background(), &Patient{MRN: "MRN002", Name: "Bob Jones"})

	result, _, err := svc.SearchPatients(context.Background(), "smith", 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 || result[0].MRN != "MRN001" {
		t.Errorf("expected only MRN001, got %v", result)
	}
}
