package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/halcyonworks/mission-control/errors"
	"github.com/halcyonworks/mission-control/services"
)

// CaptureLead handles POST /api/leads (public).
func (a *API) CaptureLead(c echo.Context) error {
	var in services.CaptureLeadInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errors.NewInvalidRequest("Malformed request body."))
	}
	lead, err := a.leads.Capture(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, lead)
}

// SubscribeNewsletter handles POST /api/newsletter (public). Repeat
// signups return 200 like first-time ones.
func (a *API) SubscribeNewsletter(c echo.Context) error {
	var in struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errors.NewInvalidRequest("Malformed request body."))
	}
	if err := a.leads.Subscribe(c.Request().Context(), in.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "subscribed"})
}

// ListLeads handles GET /api/leads (dashboard).
func (a *API) ListLeads(c echo.Context) error {
	leads, err := a.leads.ListLeads(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, leads)
}
