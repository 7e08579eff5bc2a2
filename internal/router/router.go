package router

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/charityevents/events-api/internal/handler"
)

// Options are the pieces RegisterRoutes needs beyond the handlers.
type Options struct {
	CORSOrigins []string
	UploadsDir  string
	// RateLimit guards the /api group; nil means no limit.
	RateLimit echo.MiddlewareFunc
}

// Handlers groups every HTTP handler the service exposes.
type Handlers struct {
	Activity *handler.ActivityHandler
	Article  *handler.ArticleHandler
	Health   *handler.HealthHandler
}

// Use installs the global middleware chain: recover, request id, CORS.
func Use(e *echo.Echo, opts Options) {
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: opts.CORSOrigins,
	}))
}

// RegisterRoutes maps the public API, health probe and uploaded files.
func RegisterRoutes(e *echo.Echo, h Handlers, opts Options) {
	e.GET("/healthz", h.Health.Healthz)
	if opts.UploadsDir != "" {
		e.Static("/uploads", opts.UploadsDir)
	}

	api := e.Group("/api")
	if opts.RateLimit != nil {
		api.Use(opts.RateLimit)
	}
	api.GET("/index", handler.Index)
	api.GET("/activity/getActivity", h.Activity.GetActivity)
	api.POST("/activity/register", h.Activity.Register)
	api.GET("/active/article/search", h.Article.Search)
}
