package handlers

import (
	"errors"
	"net/http"

	"pellet_panel/internal/models"
	"pellet_panel/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK       = "ok"
	statusIgnited  = "ignited"
	statusPowerSet = "power_set"
	statusFanSet   = "fan_set"
	statusShutdown = "shutdown"

	errExecuteCommand  = "stove did not accept the command"
	errGetState        = "failed to load state"
	errInvalidBodyPref = "invalid body: "

	// Shown when the stove accepted the command but recording the mode or
	// snapshot failed. The request still succeeds.
	warnBookkeeping = "command executed, but recording it failed; mode and state may lag"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondAfterCommand maps the stove service's outcome onto HTTP:
// validation errors are the caller's fault, vendor failures are a bad
// gateway, and post-command bookkeeping failures degrade to a warning
// because the physical action already happened.
func (h *Handler) respondAfterCommand(c *gin.Context, err error, status, logKey string, extra gin.H) {
	switch {
	case err == nil:
		h.respondWithStatusAndState(c, status, extra)
	case errors.Is(err, service.ErrInvalidLevel):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		var pce *service.PostCommandError
		if errors.As(err, &pce) {
			if h.log != nil {
				h.log.Warnw(logKey+"_bookkeeping", "err", err)
			}
			extra["warning"] = warnBookkeeping
			h.respondWithStatusAndState(c, status, extra)
			return
		}
		h.logAndJSONError(c, http.StatusBadGateway, errExecuteCommand, logKey, err)
	}
}

// Respond with a status and include current state if available (best-effort).
func (h *Handler) respondWithStatusAndState(c *gin.Context, status string, extra gin.H) {
	ctx := c.Request.Context()
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	if st, err := h.services.Monitoring.GetState(ctx); err == nil {
		resp["state"] = st
	}
	c.JSON(http.StatusOK, resp)
}

// Request DTOs.
type igniteRequest struct {
	Power int `json:"power" binding:"required"` // 1..5
}

type levelRequest struct {
	Level int `json:"level" binding:"required"` // 1..5
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Ignite the stove
// @Description  Starts the burn at the given power level. A manual ignite while the scheduler is active suspends it (semi-manual mode).
// @Tags         stove
// @Accept       json
// @Produce      json
// @Param        body  body  igniteRequest  true  "Ignite payload"
// @Success      200   {object}  map[string]interface{}  "status, state, optional warning"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/v1/stove/ignite [post]
// @Security     BearerAuth
func (h *Handler) ignite(c *gin.Context) {
	var req igniteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	err := h.services.Stove.Ignite(c.Request.Context(), req.Power, models.SourceManual)
	h.respondAfterCommand(c, err, statusIgnited, "stove_ignite_failed", gin.H{"power": req.Power})
}

// @Summary      Set power level
// @Tags         stove
// @Accept       json
// @Produce      json
// @Param        body  body  levelRequest  true  "Power payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/v1/stove/power [post]
// @Security     BearerAuth
func (h *Handler) setPower(c *gin.Context) {
	var req levelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	err := h.services.Stove.SetPower(c.Request.Context(), req.Level, models.SourceManual)
	h.respondAfterCommand(c, err, statusPowerSet, "stove_set_power_failed", gin.H{"power": req.Level})
}

// @Summary      Set fan level
// @Tags         stove
// @Accept       json
// @Produce      json
// @Param        body  body  levelRequest  true  "Fan payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/v1/stove/fan [post]
// @Security     BearerAuth
func (h *Handler) setFan(c *gin.Context) {
	var req levelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	err := h.services.Stove.SetFan(c.Request.Context(), req.Level, models.SourceManual)
	h.respondAfterCommand(c, err, statusFanSet, "stove_set_fan_failed", gin.H{"fan": req.Level})
}

// @Summary      Shut the stove down
// @Tags         stove
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/stove/shutdown [post]
// @Security     BearerAuth
func (h *Handler) shutdown(c *gin.Context) {
	err := h.services.Stove.Shutdown(c.Request.Context(), models.SourceManual)
	h.respondAfterCommand(c, err, statusShutdown, "stove_shutdown_failed", gin.H{})
}

// @Summary      Get stove state
// @Tags         stove
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/stove/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "stove_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}
