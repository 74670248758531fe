package handlers

import (
	"pellet_panel/internal/logger"
	"pellet_panel/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// Live state stream (HTTP upgrade) on the same port.
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerStoveRoutes(api)
		h.registerSchedulerRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerStoveRoutes(api *gin.RouterGroup) {
	st := api.Group("/stove")
	{
		st.POST("/ignite", h.ignite)      // {"power":3}
		st.POST("/power", h.setPower)     // {"level":4}
		st.POST("/fan", h.setFan)         // {"level":2}
		st.POST("/shutdown", h.shutdown)
		st.GET("/state", h.getState)
	}
}

func (h *Handler) registerSchedulerRoutes(api *gin.RouterGroup) {
	sch := api.Group("/scheduler")
	{
		sch.GET("/mode", h.getSchedulerMode)
		sch.PUT("/enabled", h.setSchedulerEnabled) // {"enabled":true}
		sch.POST("/semi-manual/clear", h.clearSemiManual)
		sch.GET("/schedule", h.getSchedule)
		sch.PUT("/schedule", h.putSchedule)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}
