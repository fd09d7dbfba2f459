package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	goerrors "github.com/goliatone/go-errors"

	"folio/analytics"
)

const (
	defaultTopLimit = 10
	maxTopLimit     = 100
)

// TrackViewRequest is the body of POST /api/views.
type TrackViewRequest struct {
	Path     string `json:"path" binding:"required"`
	Referrer string `json:"referrer"`
}

// RegisterViewRoutes registers page view tracking endpoints. Read endpoints
// answer 503 when no counter is configured.
func RegisterViewRoutes(r *gin.Engine, tracker analytics.Tracker, counter analytics.Counter) {
	g := r.Group("/api/views")
	g.POST("", handleTrackView(tracker))
	g.GET("", handleViewCount(counter))
	g.GET("/top", handleTopViews(counter))
}

func handleTrackView(tracker analytics.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TrackViewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		view := analytics.NewPageView(req.Path, req.Referrer)
		if view.Path == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
			return
		}

		if tracker != nil {
			if err := tracker.Track(c.Request.Context(), view); err != nil {
				respondError(c, goerrors.Wrap(err, goerrors.CategoryExternal, "failed to record page view"))
				return
			}
		}

		c.JSON(http.StatusAccepted, gin.H{"id": view.ID, "path": view.Path})
	}
}

func handleViewCount(counter analytics.Counter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counter == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "page view counts are not enabled"})
			return
		}

		path := analytics.NormalizePath(c.Query("path"))
		if path == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "path query parameter is required"})
			return
		}

		views, err := counter.Count(c.Request.Context(), path)
		if err != nil {
			respondError(c, goerrors.Wrap(err, goerrors.CategoryExternal, "failed to read page views"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"path": path, "views": views})
	}
}

func handleTopViews(counter analytics.Counter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counter == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "page view counts are not enabled"})
			return
		}

		limit := defaultTopLimit
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
				return
			}
			limit = min(n, maxTopLimit)
		}

		top, err := counter.Top(c.Request.Context(), limit)
		if err != nil {
			respondError(c, goerrors.Wrap(err, goerrors.CategoryExternal, "failed to read page views"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"paths": top})
	}
}
