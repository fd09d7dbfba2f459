package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	goerrors "github.com/goliatone/go-errors"
)

// respondError writes err as a go-errors response envelope with a status
// derived from its category. Details of server-side failures are withheld.
func respondError(c *gin.Context, err error) {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		richErr = goerrors.Wrap(err, goerrors.CategoryInternal, "internal error")
	}

	body := *richErr
	body.Location = nil
	status := statusFor(body.Category)
	if status >= http.StatusInternalServerError {
		body.Metadata = nil
	}

	c.JSON(status, body.ToErrorResponse(false, nil))
}

func statusFor(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryRateLimit:
		return http.StatusTooManyRequests
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	case goerrors.CategoryOperation:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
