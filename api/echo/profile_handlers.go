package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetProfile handles GET /api/profile. It returns the stored profile
// for the signed-in operator.
func (a *API) GetProfile(c echo.Context) error {
	userID, _ := c.Get(ContextKeyUserID).(string)
	profile, err := a.profiles.Get(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}
