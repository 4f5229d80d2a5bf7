package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/halcyonworks/mission-control/errors"
	"github.com/halcyonworks/mission-control/services"
)

// CreateTask handles POST /api/tasks.
func (a *API) CreateTask(c echo.Context) error {
	var in services.CreateTaskInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errors.NewInvalidRequest("Malformed request body."))
	}
	task, err := a.tasks.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

// ListTasks handles GET /api/tasks?companyId=... Without a company it
// returns every task that is not done.
func (a *API) ListTasks(c echo.Context) error {
	tasks, err := a.tasks.List(c.Request().Context(), c.QueryParam("companyId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// UpdateTask handles PATCH /api/tasks/:id.
func (a *API) UpdateTask(c echo.Context) error {
	var in services.CreateTaskInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errors.NewInvalidRequest("Malformed request body."))
	}
	task, err := a.tasks.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/:id.
func (a *API) DeleteTask(c echo.Context) error {
	if err := a.tasks.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
