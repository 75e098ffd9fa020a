package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/task-api/internal/auth"
	"github.com/ErlanBelekov/task-api/internal/domain"
	"github.com/ErlanBelekov/task-api/internal/identity"
	"github.com/ErlanBelekov/task-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

const (
	AuthCookie    = "auth_token"
	RefreshCookie = "refresh_token"

	errUnauthorized   = "Unauthorized"
	errInternalServer = "Internal server error"
)

type tokenVerifier interface {
	Verify(raw string) (string, error)
}

type userFinder interface {
	FindUserByID(ctx context.Context, id string) (*domain.User, error)
}

// Auth is the guard for protected routes. It reads the access token from the
// auth_token cookie, or from an Authorization: Bearer header when no cookie
// is sent, verifies it, resolves the subject to a user and stores that user
// in the request context. Every failure is a bare 401: the client never
// learns whether the token was missing, expired, forged or orphaned.
func Auth(tokens tokenVerifier, users userFinder, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "auth_guard")

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		raw := extractToken(c)
		if raw == "" {
			reject(c, "missing_token")
			return
		}

		userID, err := tokens.Verify(raw)
		if err != nil {
			reason := "invalid_token"
			if errors.Is(err, auth.ErrTokenExpired) {
				reason = "expired_token"
			}
			logger.DebugContext(ctx, "token rejected", "reason", reason, "error", err)
			reject(c, reason)
			return
		}

		user, err := users.FindUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				logger.DebugContext(ctx, "token subject not found", "subject", userID)
				reject(c, "unknown_subject")
				return
			}
			logger.ErrorContext(ctx, "resolve token subject", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
			return
		}

		c.Request = c.Request.WithContext(identity.WithUser(ctx, user))
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(AuthCookie); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func reject(c *gin.Context, reason string) {
	metrics.GuardRejectionsTotal.WithLabelValues(reason).Inc()
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
}
