package middleware

import (
	"errors"
	"interview-experience-backend/internal/domain"
	"interview-experience-backend/pkg/apperror"
	"interview-experience-backend/pkg/auth"
	"interview-experience-backend/pkg/security"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenVerifier is satisfied by *auth.TokenManager.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// AuthMiddleware reads the token after the scheme of the Authorization header
// ("Bearer <token>"). No token aborts with 401, a token that fails
// verification with 403. On success the caller's id and email are set on the
// gin context. Rejections go to audit and are rendered by ErrorHandler.
func AuthMiddleware(tokens TokenVerifier, audit *security.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := headerToken(c.GetHeader("Authorization"))

		identity, err := tokens.Verify(tokenString)
		if err != nil {
			ctx := c.Request.Context()
			if errors.Is(err, auth.ErrMissingToken) {
				audit.LogTokenRejected(ctx, security.EventUnauthorizedAccess, AuditMeta(c), c.Request.URL.Path)
				c.Error(apperror.Unauthorized("Unauthorized"))
			} else {
				audit.LogTokenRejected(ctx, security.EventInvalidToken, AuditMeta(c), c.Request.URL.Path)
				c.Error(apperror.Forbidden("Invalid token"))
			}
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), identity.UserID)
		c.Set(string(domain.KeyUserEmail), identity.Email)

		c.Next()
	}
}

// AuditMeta collects the caller details recorded with security events.
func AuditMeta(c *gin.Context) security.RequestMeta {
	return security.RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: c.GetString(string(domain.KeyRequestID)),
	}
}

// headerToken returns the value after the scheme. Any scheme is accepted so
// that a wrong one fails verification (403) instead of looking absent (401).
func headerToken(header string) string {
	_, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}
