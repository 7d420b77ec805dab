package app

import (
	"context"
	"fmt"
	"time"

	"sleepboard/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type App struct {
	cfg    config.Config
	router *gin.Engine
}

func New(cfg config.Config) (*App, error) {
	a := &App{cfg: cfg}

	srcLoc, dstLoc, err := loadLocations(cfg.Sheet)
	if err != nil {
		return nil, err
	}

	a.router = newRouter(cfg, srcLoc, dstLoc)
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close(ctx context.Context) error {
	_ = ctx
	return nil
}

// loadLocations resolves both timezones at startup so a bad name fails fast
// instead of silently producing missing rows.
func loadLocations(cfg config.SheetConfig) (src, dst *time.Location, err error) {
	src, err = time.LoadLocation(cfg.SourceTZ)
	if err != nil {
		return nil, nil, fmt.Errorf("source timezone %q: %w", cfg.SourceTZ, err)
	}
	dst, err = time.LoadLocation(cfg.TargetTZ)
	if err != nil {
		return nil, nil, fmt.Errorf("target timezone %q: %w", cfg.TargetTZ, err)
	}
	return src, dst, nil
}

func newRouter(cfg config.Config, srcLoc, dstLoc *time.Location) *gin.Engine {
	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowMethods = []string{"GET", "POST"}
	r.Use(cors.New(corsCfg))

	r.SetHTMLTemplate(newTemplates())

	Setup(r, cfg, srcLoc, dstLoc)
	return r
}
