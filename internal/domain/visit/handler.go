package visit

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/wardbook/wardbook/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/visits/open", h.ListOpenVisits)
	api.GET("/visits/:id", h.GetVisit)
	api.GET("/patients/:mrn/visits", h.VisitHistory)
}

func (h *Handler) ListOpenVisits(c echo.Context) error {
	p := pagination.FromContext(c)
	term := c.QueryParam("q")

	visits, total, err := h.svc.ListOpenVisits(c.Request().Context(), term, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "visit lookup failed")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(visits, total, p.Limit, p.Offset))
}

func (h *Handler) GetVisit(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid visit id")
	}

	v, err := h.svc.GetVisit(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, ErrNotFound.Error())
		}
		return echo.NewHTTPError(http.StatusServiceUnavailable, "visit lookup failed")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) VisitHistory(c echo.Context) error {
	mrn := c.Param("mrn")

	visits, err := h.svc.History(c.Request().Context(), mrn)
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "visit lookup failed")
	}
	return c.JSON(http.StatusOK, visits)
}
