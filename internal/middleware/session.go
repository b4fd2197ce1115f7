package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/internet_banking/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionOptions configures the session cookie.
type SessionOptions struct {
	Secret     string
	CookieName string
	Issuer     string
	TTL        time.Duration
	Secure     bool
}

// SessionMiddleware creates a Gin middleware handler that identifies the caller's
// session. The session ID travels in an HMAC-signed JWT cookie; a missing,
// expired or tampered cookie starts a new session.
func SessionMiddleware(opts SessionOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromContext(c)

		sessionID := ""
		if cookie, err := c.Cookie(opts.CookieName); err == nil && cookie != "" {
			id, err := ParseSessionToken(cookie, opts)
			if err != nil {
				logger.Warn("Discarding invalid session token", slog.String("error", err.Error()))
			} else {
				sessionID = id
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			token, err := IssueSessionToken(sessionID, opts, time.Now())
			if err != nil {
				logger.Error("Failed to sign session token", slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(opts.CookieName, token, int(opts.TTL.Seconds()), "/", "", opts.Secure, true)
			logger.Info("Started new session", slog.String("session_id", sessionID))
		}

		enrichedLogger := logger.With(slog.String("session_id", sessionID))

		ctx := context.WithValue(c.Request.Context(), sessionIDKey, sessionID)
		ctx = WithLogger(ctx, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Set(string(sessionIDKey), sessionID)
		c.Set(string(loggerKey), enrichedLogger)

		c.Next()
	}
}

// IssueSessionToken signs a token carrying sessionID as its subject.
func IssueSessionToken(sessionID string, opts SessionOptions, now time.Time) (string, error) {
	return utils.GenerateJWT(sessionID, opts.Secret, opts.TTL, opts.Issuer, now)
}

// ParseSessionToken validates a session token and returns its session ID.
func ParseSessionToken(tokenString string, opts SessionOptions) (string, error) {
	claims, err := utils.ParseAndValidateJWT(tokenString, opts.Secret, opts.Issuer)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
