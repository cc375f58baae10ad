package handler

import (
	"strconv"

	"parqueo_api/internal/api/middleware"
	"parqueo_api/internal/api/respond"
	"parqueo_api/internal/domain"

	"github.com/gin-gonic/gin"
)

// paramID parses a positive integer path parameter, writing a validation
// error when it is not one.
func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		respond.Error(c, domain.NewValidationError("%s must be a positive integer", name))
		return 0, false
	}
	return id, true
}

// callerID is the authenticated user's id, or 0 for anonymous requests.
func callerID(c *gin.Context) int {
	if identity, ok := middleware.Identity(c); ok {
		return identity.ID
	}
	return 0
}
