package echo

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/halcyonworks/mission-control/errors"
)

// IssuePortalLink handles POST /api/companies/:id/portal-links
// (dashboard). The response carries the raw token exactly once.
func (a *API) IssuePortalLink(c echo.Context) error {
	var in struct {
		Passcode string `json:"passcode"`
		TTLDays  int    `json:"ttlDays"`
	}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errors.NewInvalidRequest("Malformed request body."))
	}
	ttl := time.Duration(in.TTLDays) * 24 * time.Hour
	issued, err := a.portal.Issue(c.Request().Context(), c.Param("id"), in.Passcode, ttl)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, issued)
}

// ListPortalLinks handles GET /api/companies/:id/portal-links.
func (a *API) ListPortalLinks(c echo.Context) error {
	links, err := a.portal.ListByCompany(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, links)
}

// RevokePortalLink handles DELETE /api/portal-links/:id.
func (a *API) RevokePortalLink(c echo.Context) error {
	if err := a.portal.Revoke(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// PortalAccess handles POST /portal/:token (public). A successful
// check returns the overview directly so the client SPA needs a
// single round trip.
func (a *API) PortalAccess(c echo.Context) error {
	var in struct {
		Passcode string `json:"passcode"`
	}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errors.NewInvalidRequest("Malformed request body."))
	}
	link, err := a.portal.Access(c.Request().Context(), c.Param("token"), in.Passcode)
	if err != nil {
		return respondError(c, err)
	}
	overview, err := a.portal.Overview(c.Request().Context(), link)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, overview)
}

// PortalOverview handles GET /portal/:token/overview (public). Only
// links without a passcode can be read this way; passcode-protected
// links must POST the passcode.
func (a *API) PortalOverview(c echo.Context) error {
	link, err := a.portal.Access(c.Request().Context(), c.Param("token"), "")
	if err != nil {
		return respondError(c, err)
	}
	overview, err := a.portal.Overview(c.Request().Context(), link)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, overview)
}
