package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"folio/resume"
)

// RegisterResumeRoutes registers the static resume endpoint.
func RegisterResumeRoutes(r *gin.Engine) {
	r.GET("/api/resume", handleResume)
}

func handleResume(c *gin.Context) {
	doc, err := resume.Load()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.JSON(http.StatusOK, doc)
}
