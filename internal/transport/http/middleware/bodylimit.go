package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"postly/internal/transport/http/response"
)

// BodyLimit rejects requests whose declared Content-Length exceeds maxBytes
// and caps undeclared bodies with MaxBytesReader, so a lying client cannot
// stream past the limit either.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodePayloadTooLarge, "payload too large")
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
