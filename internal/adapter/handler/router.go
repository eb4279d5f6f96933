package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dbmarquetti/notas-magicas/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg                *config.Config
	analysisHandler    *Analysis
	historyHandler     *History
	preferencesHandler *Preferences
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, analysisHandler *Analysis, historyHandler *History, preferencesHandler *Preferences) *Router {
	return &Router{
		cfg:                cfg,
		analysisHandler:    analysisHandler,
		historyHandler:     historyHandler,
		preferencesHandler: preferencesHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)

	v1 := e.Group("/v1")

	rt.setupAnalysisRoutes(v1)
	rt.setupHistoryRoutes(v1)
	rt.setupPreferencesRoutes(v1)
}

func (rt *Router) setupAnalysisRoutes(g *echo.Group) {
	analyses := g.Group("/analyses")
	analyses.POST("", rt.analysisHandler.AnalyzeMedia)
	analyses.POST("/transcript", rt.analysisHandler.AnalyzeTranscript)
}

func (rt *Router) setupHistoryRoutes(g *echo.Group) {
	history := g.Group("/history")
	history.GET("", rt.historyHandler.List)
	history.DELETE("", rt.historyHandler.Clear)
	history.GET("/:id", rt.historyHandler.Get)
	history.DELETE("/:id", rt.historyHandler.Delete)
	history.GET("/:id/export", rt.historyHandler.Export)

	g.GET("/exports", rt.historyHandler.ListExports)
}

func (rt *Router) setupPreferencesRoutes(g *echo.Group) {
	prefs := g.Group("/preferences")
	prefs.GET("", rt.preferencesHandler.Get)
	prefs.PUT("", rt.preferencesHandler.Update)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
