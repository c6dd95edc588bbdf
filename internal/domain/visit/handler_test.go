package visit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *mockRepo, *echo.Echo) {
	repo := newMockRepo()
	h := NewHandler(NewService(repo))
	e := echo.New()
	return h, repo, e
}

func TestHandler_GetVisit(t *testing.T) {
	h, _, e := newTestHandler()

	v := mustOpen(t, h.svc, "MRN001", "Hematology", time.Now())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(v.ID.String())

	if err := h.GetVisit(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_GetVisit_BadID(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.GetVisit(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_GetVisit_NotFound(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.GetVisit(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_ListOpenVisits(t *testing.T) {
	h, repo, e := newTestHandler()
	repo.names["MRN001"] = "Alice Smith"
	repo.names["MRN002"] = "Bob Jones"

	mustOpen(t, h.svc, "MRN001", "Hematology", time.Now())
	mustOpen(t, h.svc, "MRN002", "Neurology", time.Now())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/visits/open?q=smith", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListOpenVisits(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data  []*OpenVisit `json:"data"`
		Total int          `json:"total"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 1 || len(resp.Data) != 1 {
		t.Fatalf("expected 1 open visit, got %d", resp.Total)
	}
	if resp.Data[0].PatientName != "Alice Smith" {
		t.Errorf("expected Alice Smith, got %s", resp.Data[0].PatientName)
	}
}

func TestHandler_VisitHistory(t *testing.T) {
	h, _, e := newTestHandler()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	v := mustOpen(t, h.svc, "MRN001", "Hematology", base)
	if _, err := h.svc.CloseVisit(context.Background(), v.ID, base.Add(time.Hour), nil); err != nil {
		t.Fatalf("close visit: %v", err)
	}
	mustOpen(t, h.svc, "MRN001", "Neurology", base.Add(24*time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("mrn")
	c.SetParamValues("MRN001")

	if err := h.VisitHistory(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var visits []*Visit
	json.Unmarshal(rec.Body.Bytes(), &visits)
	if len(visits) != 2 {
		t.Fatalf("expected 2 visits, got %d", len(visits))
	}
	if visits[0].Specialty != "Neurology" {
		t.Errorf("expected newest visit first, got %s", visits[0].Specialty)
	}
}
