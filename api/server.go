package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"folio/analytics"
	"folio/telemetry"
	"folio/types"
)

// ContentService is the part of the content gateway the API exposes.
type ContentService interface {
	Host() string
	ListRecentPosts(ctx context.Context) ([]types.Post, error)
	GetPageBySlug(ctx context.Context, slug string) (types.Page, bool, error)
}

// Deps are the collaborators the routes need. Views and Counter may be nil.
type Deps struct {
	Content ContentService
	Views   analytics.Tracker
	Counter analytics.Counter
	Logger  *slog.Logger
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(d.Logger))

	RegisterHealthRoutes(r)
	RegisterPostRoutes(r, d.Content)
	RegisterPageRoutes(r, d.Content)
	RegisterResumeRoutes(r)
	RegisterViewRoutes(r, d.Views, d.Counter)
	return r
}

// NewHandler wraps the router with CORS for the web and native front ends
// and with request tracing.
func NewHandler(r http.Handler, allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "baggage", "traceparent"},
		AllowCredentials: false,
	})
	return telemetry.Handler(c.Handler(r), "folio-api")
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelDebug
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		logger.Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
