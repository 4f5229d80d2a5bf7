package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/halcyonworks/mission-control/domain"
	"github.com/halcyonworks/mission-control/errors"
	"github.com/halcyonworks/mission-control/services"
)

// CreateCompany handles POST /api/companies.
func (a *API) CreateCompany(c echo.Context) error {
	var in services.CreateCompanyInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errors.NewInvalidRequest("Malformed request body."))
	}
	company, err := a.companies.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, company)
}

// ListCompanies handles GET /api/companies?stage=ACTIVE.
func (a *API) ListCompanies(c echo.Context) error {
	stage := domain.CompanyStage(c.QueryParam("stage"))
	companies, err := a.companies.List(c.Request().Context(), stage)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, companies)
}

// GetCompany handles GET /api/companies/:id.
func (a *API) GetCompany(c echo.Context) error {
	company, err := a.companies.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, company)
}

// UpdateCompany handles PATCH /api/companies/:id.
func (a *API) UpdateCompany(c echo.Context) error {
	var in services.CreateCompanyInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errors.NewInvalidRequest("Malformed request body."))
	}
	company, err := a.companies.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, company)
}

// DeleteCompany handles DELETE /api/companies/:id.
func (a *API) DeleteCompany(c echo.Context) error {
	if err := a.companies.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
