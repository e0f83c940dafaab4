package handlers

import (
	"net/http"

	"paperstore/internal/repo"

	"github.com/labstack/echo/v4"
)

// ActivityHandler exposes the audit log to the admin console
type ActivityHandler struct {
	activityRepo *repo.ActivityRepository
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityRepo *repo.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{activityRepo: activityRepo}
}

// List godoc
// @Summary List activity
// @Description List audit entries with pagination, optionally filtered by action
// @Tags activity
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param action query string false "Filter by action"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /activity [get]
func (h *ActivityHandler) List(c echo.Context) error {
	limit, offset := parsePagination(c)

	result, err := h.activityRepo.List(limit, offset, c.QueryParam("action"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list activity"})
	}

	return c.JSON(http.StatusOK, result)
}
