package echo

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/halcyonworks/mission-control/domain"
	"github.com/halcyonworks/mission-control/errors"
	"github.com/halcyonworks/mission-control/services"
)

// respondError maps service errors onto the standard JSON error
// shapes.
func respondError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, services.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, errors.NewInvalidRequest(err.Error()))
	case stderrors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, errors.NewNotFound("Resource not found."))
	case stderrors.Is(err, services.ErrPortalDenied):
		return c.JSON(http.StatusForbidden, errors.NewForbidden("This link is invalid, expired or revoked."))
	default:
		return c.JSON(http.StatusInternalServerError, errors.NewServerError("Something went wrong."))
	}
}
