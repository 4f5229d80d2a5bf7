package echo

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/halcyonworks/mission-control/errors"
	"github.com/halcyonworks/mission-control/services"
)

// GenerateAudit handles POST /api/companies/:id/audits. The audit is
// generated synchronously; a failed scrape or model call still
// returns 201 with the audit in FAILED state.
func (a *API) GenerateAudit(c echo.Context) error {
	var in struct {
		SourceURL string `json:"sourceUrl"`
	}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errors.NewInvalidRequest("Malformed request body."))
	}
	audit, err := a.audits.Generate(c.Request().Context(), c.Param("id"), in.SourceURL)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, audit)
}

// ScrapePreview handles POST /api/scrape. It fetches and summarizes
// a URL without persisting anything.
func (a *API) ScrapePreview(c echo.Context) error {
	var in struct {
		URL string `json:"url"`
	}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errors.NewInvalidRequest("Malformed request body."))
	}
	page, err := a.audits.Preview(c.Request().Context(), in.URL)
	if err != nil {
		if stderrors.Is(err, services.ErrInvalidInput) {
			return respondError(c, err)
		}
		return c.JSON(http.StatusBadGateway, errors.NewServerError("Could not fetch that page."))
	}
	return c.JSON(http.StatusOK, page)
}

// ListAudits handles GET /api/companies/:id/audits.
func (a *API) ListAudits(c echo.Context) error {
	audits, err := a.audits.ListByCompany(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, audits)
}
