package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	goerrors "github.com/goliatone/go-errors"

	"folio/types"
)

// PostsResponse is the body of GET /api/posts.
type PostsResponse struct {
	Host  string       `json:"host"`
	Count int          `json:"count"`
	Posts []types.Post `json:"posts"`
}

// RegisterPostRoutes registers the blog listing endpoint.
func RegisterPostRoutes(r *gin.Engine, content ContentService) {
	r.GET("/api/posts", func(c *gin.Context) {
		posts, err := content.ListRecentPosts(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, PostsResponse{Host: content.Host(), Count: len(posts), Posts: posts})
	})
}

// RegisterPageRoutes registers the static page endpoint.
func RegisterPageRoutes(r *gin.Engine, content ContentService) {
	r.GET("/api/pages/:slug", func(c *gin.Context) {
		slug := c.Param("slug")

		page, ok, err := content.GetPageBySlug(c.Request.Context(), slug)
		if err != nil {
			respondError(c, err)
			return
		}
		if !ok {
			respondError(c, goerrors.New("page not found", goerrors.CategoryNotFound).
				WithTextCode("PAGE_NOT_FOUND").
				WithMetadata(map[string]any{"slug": slug}))
			return
		}
		c.JSON(http.StatusOK, page)
	})
}
