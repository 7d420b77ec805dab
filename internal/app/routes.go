package app

import (
	"time"

	"sleepboard/internal/cache"
	"sleepboard/internal/config"
	"sleepboard/internal/handlers"
	"sleepboard/internal/service"
	"sleepboard/internal/source"

	"github.com/gin-gonic/gin"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, srcLoc, dstLoc *time.Location) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))

	sheetSrc := source.NewSheetSource(cfg.Sheet.FetchTimeout.Duration())
	snapCache := cache.New(cfg.Sheet.CacheTTL.Duration())
	sleepSvc := service.NewSleepService(sheetSrc, snapCache, cfg.Sheet.CSVURL, srcLoc, dstLoc)
	sleepHandler := handlers.NewSleepHandler(sleepSvc, cfg.Sheet.SourceTZ, cfg.Sheet.TargetTZ)

	r.GET("/dashboard", sleepHandler.Dashboard)

	api := r.Group("/api/v1")
	registerSleepRoutes(api, sleepHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":   "Sleep Persuasion Tracker",
			"version":   cfg.App.Version,
			"env":       cfg.App.Env,
			"dashboard": "/dashboard",
			"health":    "/health",
			"api":       "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func registerSleepRoutes(api *gin.RouterGroup, h *handlers.SleepHandler) {
	api.GET("/entries", h.Entries)
	api.GET("/metrics", h.Metrics)
	api.POST("/refresh", h.Refresh)
}
