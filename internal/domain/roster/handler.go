package roster

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/roster", h.GetRoster)
}

func (h *Handler) GetRoster(c echo.Context) error {
	p := Params{
		SearchTerm: c.QueryParam("q"),
		SortBy:     c.QueryParam("sort_by"),
		SortOrder:  c.QueryParam("sort_order"),
	}
	if raw := c.QueryParam("specialties"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				p.Specialties = append(p.Specialties, name)
			}
		}
	}

	view, err := h.svc.BuildView(c.Request().Context(), p)
	if err != nil {
		if isValidation(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusServiceUnavailable, "roster lookup failed")
	}
	return c.JSON(http.StatusOK, view)
}

// Validation errors carry no wrapped cause; repo failures always do.
func isValidation(err error) bool {
	return err != nil && errors.Unwrap(err) == nil
}
