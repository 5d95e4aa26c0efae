package api

import (
	"context"
	"net/http"
	"time"

	"shogun-be/internal/auth"
	"shogun-be/internal/logger"
	"shogun-be/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const pingTimeout = 2 * time.Second

func (s *Server) health(c *gin.Context) {
	status, dbStatus, code := "ok", "ok", http.StatusOK

	if s.deps.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()
		if err := s.deps.DB.PingContext(ctx); err != nil {
			logger.FromCtx(c.Request.Context()).Warn("health check: database unreachable", zap.Error(err))
			status, dbStatus, code = "degraded", "unreachable", http.StatusServiceUnavailable
		}
	}

	c.JSON(code, gin.H{
		"status":    status,
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   s.deps.Version,
		"metrics":   s.deps.Metrics.Snapshot(),
	})
}

func userPayload(c *gin.Context) gin.H {
	ctx := c.Request.Context()
	return gin.H{
		"email":  utils.GetUserEmailFromContext(ctx),
		"nombre": utils.GetUserNameFromContext(ctx),
		"rol":    utils.GetUserRoleFromContext(ctx),
		"activo": utils.IsUserActive(ctx),
	}
}

// login confirms the session for an already verified token.
func (s *Server) login(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "user": userPayload(c)})
}

func (s *Server) verify(c *gin.Context) {
	if _, ok := utils.GetUserIDFromContext(c.Request.Context()); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Token invalido o expirado",
			"code":    "INVALID_TOKEN",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": userPayload(c)})
}

func (s *Server) logout(c *gin.Context) {
	c.SetCookie(auth.AccessTokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Sesion cerrada"})
}
