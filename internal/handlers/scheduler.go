package handlers

import (
	"errors"
	"net/http"

	"pellet_panel/internal/models"
	"pellet_panel/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusEnabledSet  = "enabled_set"
	statusOverCleared = "semi_manual_cleared"
	statusScheduleSet = "schedule_set"

	errGetMode     = "failed to load scheduler mode"
	errSetMode     = "failed to update scheduler mode"
	errGetSchedule = "failed to load schedule"
	errPutSchedule = "failed to store schedule"
)

type enabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// scheduleRequest maps lowercase day names to interval lists, e.g.
// {"monday":[{"start":"06:00","end":"08:00","power":3,"fan":2}]}.
type scheduleRequest map[string][]models.ScheduleInterval

// @Summary      Get scheduler mode
// @Tags         scheduler
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/scheduler/mode [get]
// @Security     BearerAuth
func (h *Handler) getSchedulerMode(c *gin.Context) {
	mode, err := h.services.SchedulerMode.GetMode(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetMode, "scheduler_get_mode_failed", err)
		return
	}
	c.JSON(http.StatusOK, mode)
}

// @Summary      Enable or disable the scheduler
// @Description  Turning the scheduler on or off always drops any semi-manual override.
// @Tags         scheduler
// @Accept       json
// @Produce      json
// @Param        body  body  enabledRequest  true  "Enabled payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/scheduler/enabled [put]
// @Security     BearerAuth
func (h *Handler) setSchedulerEnabled(c *gin.Context) {
	var req enabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	if err := h.services.SchedulerMode.SetEnabled(ctx, *req.Enabled); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSetMode, "scheduler_set_enabled_failed", err)
		return
	}
	mode, _ := h.services.SchedulerMode.GetMode(ctx)
	c.JSON(http.StatusOK, gin.H{"status": statusEnabledSet, "mode": mode})
}

// @Summary      Clear semi-manual override
// @Tags         scheduler
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/scheduler/semi-manual/clear [post]
// @Security     BearerAuth
func (h *Handler) clearSemiManual(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.services.SchedulerMode.ClearSemiManual(ctx); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSetMode, "scheduler_clear_semi_manual_failed", err)
		return
	}
	mode, _ := h.services.SchedulerMode.GetMode(ctx)
	c.JSON(http.StatusOK, gin.H{"status": statusOverCleared, "mode": mode})
}

// @Summary      Get the weekly schedule
// @Tags         scheduler
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/scheduler/schedule [get]
// @Security     BearerAuth
func (h *Handler) getSchedule(c *gin.Context) {
	ws, err := h.services.Schedule.Get(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetSchedule, "schedule_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": scheduleToJSON(ws)})
}

// @Summary      Replace the weekly schedule
// @Description  Intervals must have start < end (same day) and power/fan 1..5. Overlapping intervals are stored as given; the first stored match wins at runtime.
// @Tags         scheduler
// @Accept       json
// @Produce      json
// @Param        body  body  scheduleRequest  true  "Schedule payload keyed by day name"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/scheduler/schedule [put]
// @Security     BearerAuth
func (h *Handler) putSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	ws, err := scheduleFromJSON(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Schedule.Put(c.Request.Context(), ws); err != nil {
		if errors.Is(err, service.ErrInvalidSchedule) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errPutSchedule, "schedule_put_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusScheduleSet, "schedule": scheduleToJSON(ws)})
}

// scheduleFromJSON resolves user-facing day names to the internal weekday
// keys.
func scheduleFromJSON(req scheduleRequest) (models.WeeklySchedule, error) {
	ws := models.WeeklySchedule{}
	for name, intervals := range req {
		day, err := models.ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		ws[day] = intervals
	}
	return ws, nil
}

// scheduleToJSON renders day names for the UI; every day is present so the
// editor can show empty days too.
func scheduleToJSON(ws models.WeeklySchedule) map[string][]models.ScheduleInterval {
	out := make(map[string][]models.ScheduleInterval, 7)
	for day := models.Monday; day <= models.Sunday; day++ {
		intervals := ws[day]
		if intervals == nil {
			intervals = []models.ScheduleInterval{}
		}
		out[day.String()] = intervals
	}
	return out
}
