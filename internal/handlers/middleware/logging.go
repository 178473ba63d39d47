package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rafabene/usermanager/internal/domain/ports"
)

const (
	// RequestIDHeader é o header que carrega o identificador da requisição
	RequestIDHeader = "X-Request-ID"
	// RequestIDContextKey é a chave do identificador no contexto do Gin
	RequestIDContextKey = "request_id"
)

// RequestID propaga o X-Request-ID recebido ou gera um novo
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDContextKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger registra uma linha por requisição atendida
func RequestLogger(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(RequestIDContextKey),
		}
		if len(c.Errors) > 0 {
			args = append(args, "error", c.Errors.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("request failed", args...)
		case status >= http.StatusBadRequest:
			logger.Warn("request rejected", args...)
		default:
			logger.Info("request handled", args...)
		}
	}
}

// Recovery converte panics em 500, delegando a resposta a respond
func Recovery(logger ports.Logger, respond gin.HandlerFunc) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			"path", c.Request.URL.Path,
			"panic", recovered,
			"request_id", c.GetString(RequestIDContextKey),
		)
		if respond != nil {
			respond(c)
			c.Abort()
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}
