// Package http provides the HTTP server, routing and middleware.
package http

import (
	"log/slog"
	"time"

	"github.com/allisson/go-pwdhash"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	apperrors "github.com/docbrief/docbrief/internal/errors"
	"github.com/docbrief/docbrief/internal/httputil"
)

// CustomLoggerMiddleware logs HTTP requests with the request id assigned by
// the requestid middleware.
func CustomLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info("http request",
			slog.String("request_id", requestid.Get(c)),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("remote_addr", c.ClientIP()),
		)
	}
}

// APIKeyAuthMiddleware authenticates requests via the X-API-Key header.
//
// The configured value is an Argon2id hash of the admin API key, so the plain
// key never touches configuration or logs. A verified request runs with the
// "admin" actor, which mutating use cases record in the audit trail.
//
// An empty hash disables authentication and the middleware passes every
// request through unchanged. The server logs a warning in that case.
func APIKeyAuthMiddleware(apiKeyHash string, logger *slog.Logger) gin.HandlerFunc {
	if apiKeyHash == "" {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			logger.Debug("authentication failed: missing api key header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		ok, err := hasher.Verify([]byte(apiKey), apiKeyHash)
		if err != nil || !ok {
			logger.Debug("authentication failed: api key mismatch")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		httputil.SetActor(c, "admin")
		c.Next()
	}
}
