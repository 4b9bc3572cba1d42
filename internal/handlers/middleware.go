package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/uplift/internal/metrics"
	"github.com/justsurfingit/uplift/internal/services"
	"go.uber.org/zap"
)

const (
	ctxAccountID = "account_id"
	ctxToken     = "session_token"
)

// RequestLogger writes one structured line per request and counts it.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		metrics.HTTPRequestsTotal.WithLabelValues(path, c.Request.Method, strconv.Itoa(status)).Inc()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		if status >= 500 {
			logger.Error("request", fields...)
		} else {
			logger.Info("request", fields...)
		}
	}
}

// Session resolves the bearer token when present. With required set, requests
// without a valid session are rejected.
func Session(accounts *services.AccountService, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token != "" {
			if id, err := accounts.Authenticate(token); err == nil {
				c.Set(ctxAccountID, id)
				c.Set(ctxToken, token)
				c.Next()
				return
			}
		}
		if required {
			respondError(c, services.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

// accountID is empty for anonymous requests.
func accountID(c *gin.Context) string {
	return c.GetString(ctxAccountID)
}
