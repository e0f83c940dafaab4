package handlers

import (
	"fmt"
	"net/http"

	"paperstore/internal/services"
	"paperstore/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// WorkingHoursHandler handles the store working-window endpoints
type WorkingHoursHandler struct {
	hoursService    *services.HoursService
	activityService *services.ActivityService
}

// NewWorkingHoursHandler creates a new working hours handler
func NewWorkingHoursHandler(hoursService *services.HoursService, activityService *services.ActivityService) *WorkingHoursHandler {
	return &WorkingHoursHandler{
		hoursService:    hoursService,
		activityService: activityService,
	}
}

// Status godoc
// @Summary Store open status
// @Description Report whether the store currently accepts orders and its configured window
// @Tags store
// @Produce json
// @Success 200 {object} hours.Status
// @Router /store/status [get]
func (h *WorkingHoursHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, h.hoursService.Status())
}

// Get godoc
// @Summary Current schedule
// @Description Return the configured working window for the admin console
// @Tags working-hours
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /working-hours [get]
func (h *WorkingHoursHandler) Get(c echo.Context) error {
	status := h.hoursService.Status()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"schedule": status.Schedule,
		"window":   status.Window,
		"open":     status.Open,
	})
}

// Update godoc
// @Summary Update schedule
// @Description Replace the working window; a start after end is stored but never opens
// @Tags working-hours
// @Accept json
// @Produce json
// @Param request body models.UpdateWorkingHoursRequest true "New window"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /working-hours [put]
func (h *WorkingHoursHandler) Update(c echo.Context) error {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not found"})
	}

	var req models.UpdateWorkingHoursRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	wh, malformed, err := h.hoursService.Update(req, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save schedule"})
	}

	detail := fmt.Sprintf("%02d:%02d-%02d:%02d active=%t", wh.StartHour, wh.StartMinute, wh.EndHour, wh.EndMinute, wh.IsActive)
	h.activityService.Record(staffActor(c), models.ActionScheduleSaved, "working_hours", &wh.ID, detail)

	response := map[string]interface{}{"schedule": wh}
	if malformed {
		response["warning"] = "start is after end; the store will never open with this window"
	}

	return c.JSON(http.StatusOK, response)
}
