package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"postly/internal/transport/http/middleware"
	"postly/internal/transport/http/response"
)

// bindJSON decodes the request body into obj and writes the error response on
// failure. A body truncated by the size limiter maps to 413, anything else
// to 400.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodePayloadTooLarge, "payload too large")
			return false
		}
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return false
	}
	return true
}

func getUserIDFromContext(c *gin.Context) (uint, bool) {
	userIDAny, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := userIDAny.(uint)
	return userID, ok
}
