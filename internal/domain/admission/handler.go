package admission

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wardbook/wardbook/internal/domain/patient"
	"github.com/wardbook/wardbook/internal/domain/visit"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/admissions", h.Admit)
	api.POST("/discharges", h.Discharge)
}

type admitRequest struct {
	MRN            string  `json:"mrn"`
	PatientName    string  `json:"patient_name"`
	Age            *int    `json:"age,omitempty"`
	Gender         *string `json:"gender,omitempty"`
	AssignedDoctor *string `json:"assigned_doctor,omitempty"`
	Specialty      string  `json:"specialty"`
	AdmissionDate  string  `json:"admission_date"`
	AdmissionTime  string  `json:"admission_time"`
}

type dischargeRequest struct {
	MRN           string  `json:"mrn"`
	DischargeDate string  `json:"discharge_date"`
	DischargeTime string  `json:"discharge_time"`
	Note          *string `json:"discharge_note,omitempty"`
}

func (h *Handler) Admit(c echo.Context) error {
	var req admitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	var admittedAt time.Time
	if req.AdmissionDate != "" || req.AdmissionTime != "" {
		var err error
		admittedAt, err = composeInstant(req.AdmissionDate, req.AdmissionTime)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	result, err := h.svc.Admit(c.Request().Context(), AdmitRequest{
		MRN:            req.MRN,
		PatientName:    req.PatientName,
		Age:            req.Age,
		Gender:         req.Gender,
		AssignedDoctor: req.AssignedDoctor,
		Specialty:      req.Specialty,
		AdmittedAt:     admittedAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, visit.ErrOpenVisitExists):
			return echo.NewHTTPError(http.StatusConflict, visit.ErrOpenVisitExists.Error())
		case errors.Is(err, visit.ErrInvalidSpecialty):
			return echo.NewHTTPError(http.StatusBadRequest, visit.ErrInvalidSpecialty.Error())
		case errors.Is(err, patient.ErrDuplicateMRN):
			return echo.NewHTTPError(http.StatusConflict, patient.ErrDuplicateMRN.Error())
		case isValidation(err):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusServiceUnavailable, "admission failed")
		}
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) Discharge(c echo.Context) error {
	var req dischargeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.MRN == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "mrn is required")
	}

	dischargedAt, err := composeInstant(req.DischargeDate, req.DischargeTime)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	v, err := h.svc.Discharge(c.Request().Context(), req.MRN, dischargedAt, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, visit.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "no open visit for this patient")
		case errors.Is(err, visit.ErrAlreadyClosed):
			return echo.NewHTTPError(http.StatusConflict, visit.ErrAlreadyClosed.Error())
		case errors.Is(err, visit.ErrDischargeBeforeAdmission):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, visit.ErrDischargeBeforeAdmission.Error())
		case isValidation(err):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusServiceUnavailable, "discharge failed")
		}
	}
	return c.JSON(http.StatusOK, v)
}

// composeInstant joins the form's separate date and clock-time fields into
// one UTC instant. Both parts are required; seconds are accepted but not
// expected from the UI.
func composeInstant(date, clock string) (time.Time, error) {
	if date == "" || clock == "" {
		return time.Time{}, fmt.Errorf("date and time are both required")
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, date+"T"+clock); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date or time: %s %s", date, clock)
}

// isValidation reports whether err is a plain input validation error from a
// service. Services build these with fmt.Errorf and no wrapped cause; the
// repo layer always wraps the underlying pgx failure.
func isValidation(err error) bool {
	return err != nil && errors.Unwrap(err) == nil
}
