package middleware

import (
	"net/http"
	"strings"

	"novelhub/internal/middleware/auth"
	"novelhub/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PrincipalKey is the gin context key holding the verified *shared.Principal.
const PrincipalKey = "principal"

// Authenticate verifies the bearer token when one is present. Requests without an
// Authorization header continue as anonymous; a present but invalid token is rejected.
func Authenticate(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		// Extract token (format: "Bearer <token>")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		principal, err := verifier.Verify(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Debug().Err(err).Msg("session token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(PrincipalKey, principal)
		logger := zerolog.Ctx(c.Request.Context()).With().Str("subject", principal.Subject).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))
		c.Next()
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Principal(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
			return
		}
		c.Next()
	}
}

// Principal returns the verified caller, or nil for an anonymous request.
func Principal(c *gin.Context) *shared.Principal {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*shared.Principal)
	return p
}
