package middleware

import (
	"context"
	"strings"

	"parqueo_api/internal/api/respond"
	"parqueo_api/internal/domain"
	"parqueo_api/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	AuthorizationHeaderKey  = "Authorization"
	AuthorizationTypeBearer = "Bearer"
	IdentityKey             = "identity"
)

// IdentityResolver turns a bearer token into the caller as stored.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (*domain.UserIdentity, error)
}

type AuthMiddleware struct {
	resolver IdentityResolver
	policy   *domain.Policy
}

func NewAuthMiddleware(resolver IdentityResolver, policy *domain.Policy) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver, policy: policy}
}

// Authenticate requires a valid bearer token and stores the caller's
// identity in the gin context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader(AuthorizationHeaderKey))
		if err != nil {
			respond.Error(c, err)
			return
		}
		if !m.identify(c, token) {
			return
		}
		c.Next()
	}
}

// OptionalAuthenticate identifies the caller when a token is present and
// lets anonymous requests through. A token that is present but invalid is
// still rejected.
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(AuthorizationHeaderKey) == "" {
			c.Next()
			return
		}
		token, err := bearerToken(c.GetHeader(AuthorizationHeaderKey))
		if err != nil {
			respond.Error(c, err)
			return
		}
		if !m.identify(c, token) {
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) identify(c *gin.Context, token string) bool {
	identity, err := m.resolver.ResolveIdentity(c.Request.Context(), token)
	if err != nil {
		respond.Error(c, err)
		return false
	}
	c.Set(IdentityKey, identity)

	entry := logger.FromContext(c.Request.Context()).WithFields(logrus.Fields{
		"usuario_id": identity.ID,
		"rol":        identity.Rol,
	})
	c.Request = c.Request.WithContext(logger.ToContext(c.Request.Context(), entry))
	return true
}

// Require lets the request through only when the caller's role grants every
// listed capability. It must run after Authenticate.
func (m *AuthMiddleware) Require(caps ...domain.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := Identity(c)
		if !ok {
			respond.Error(c, domain.ErrTokenMissing)
			return
		}
		for _, cp := range caps {
			if !m.policy.Allows(identity.Rol, cp) {
				logger.FromContext(c.Request.Context()).WithField("capability", cp).Warn("access denied")
				respond.Error(c, domain.ErrAccessDenied)
				return
			}
		}
		c.Next()
	}
}

// Identity returns the caller stored by Authenticate.
func Identity(c *gin.Context) (*domain.UserIdentity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*domain.UserIdentity)
	return identity, ok
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", domain.ErrTokenMissing
	}
	fields := strings.Fields(header)
	if len(fields) != 2 || !strings.EqualFold(fields[0], AuthorizationTypeBearer) {
		return "", domain.ErrTokenMalformed
	}
	return fields[1], nil
}
