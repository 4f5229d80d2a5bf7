package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/halcyonworks/mission-control/domain"
	"github.com/halcyonworks/mission-control/errors"
)

// GenerateProposal handles POST /api/companies/:id/proposals.
func (a *API) GenerateProposal(c echo.Context) error {
	var in struct {
		Title string `json:"title"`
		Notes string `json:"notes"`
	}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errors.NewInvalidRequest("Malformed request body."))
	}
	proposal, err := a.proposals.Generate(c.Request().Context(), c.Param("id"), in.Title, in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, proposal)
}

// ListProposals handles GET /api/companies/:id/proposals.
func (a *API) ListProposals(c echo.Context) error {
	proposals, err := a.proposals.ListByCompany(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, proposals)
}

// UpdateProposalStatus handles PATCH /api/proposals/:id/status.
func (a *API) UpdateProposalStatus(c echo.Context) error {
	var in struct {
		Status domain.ProposalStatus `json:"status"`
	}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errors.NewInvalidRequest("Malformed request body."))
	}
	proposal, err := a.proposals.UpdateStatus(c.Request().Context(), c.Param("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, proposal)
}
