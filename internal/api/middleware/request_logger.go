package middleware

import (
	"time"

	"parqueo_api/internal/api/respond"
	"parqueo_api/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id, stores a logrus entry carrying
// it in the request context and logs the outcome. exposeDetails lets error
// responses include internal failure text.
func RequestLogger(exposeDetails bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		entry := logrus.WithField("request_id", requestID)
		c.Request = c.Request.WithContext(logger.ToContext(c.Request.Context(), entry))
		if exposeDetails {
			respond.ExposeDetails(c)
		}

		c.Next()

		status := c.Writer.Status()
		fields := entry.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  status,
			"latency": time.Since(start).String(),
		})
		switch {
		case status >= 500:
			fields.Error("request")
		case status >= 400:
			fields.Warn("request")
		default:
			fields.Info("request")
		}
	}
}
