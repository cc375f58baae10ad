package middleware

import (
	"fmt"

	"parqueo_api/internal/api/respond"
	"parqueo_api/internal/logger"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into the internal error JSON shape.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.FromContext(c.Request.Context()).WithField("panic", recovered).Error("handler panicked")
		respond.Error(c, fmt.Errorf("panic: %v", recovered))
	})
}
