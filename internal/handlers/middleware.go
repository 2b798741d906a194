package handlers

import (
	"net/http"
	"time"

	"menulink/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
)

const (
	SessionHeader = "X-Session-ID"
	sessionKey    = "session_id"
)

// Session reads the X-Session-ID header, issuing a fresh id when it is
// missing or malformed, and echoes it back so the client can keep it.
func Session(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(sessionKey, id)
		c.Header(SessionHeader, id)
		c.Request = c.Request.WithContext(log.WithSession(c.Request.Context(), id))
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		event := log.Info(ctx)
		if status >= http.StatusInternalServerError {
			event = log.Error(ctx)
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("request.complete")
	}
}

// CORS allows the storefront origins and exposes the session header.
func CORS(origins []string) gin.HandlerFunc {
	policy := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", SessionHeader},
		ExposedHeaders:   []string{SessionHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})
	return func(c *gin.Context) {
		passed := false
		policy.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)
		// Preflight requests are answered by the policy itself.
		if !passed {
			c.Abort()
		}
	}
}
