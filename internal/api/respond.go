package api

import (
	"net/http"

	"shogun-be/internal/apperr"
	"shogun-be/internal/logger"
	"shogun-be/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// fail writes err as {success:false, error}. Internal errors are logged and
// answered with a generic message.
func fail(c *gin.Context, op string, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.FromCtx(c.Request.Context()).Error("request failed",
			zap.String("layer", "api"),
			zap.String("op", op),
			zap.String("id", c.Param("id")),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"success": false, "error": apperr.PublicMessage(err)})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"success": false, "error": msg})
}

// includeInactive honors ?all=true for admins only.
func includeInactive(c *gin.Context) bool {
	if c.Query("all") != "true" {
		return false
	}
	ctx := c.Request.Context()
	return utils.IsUserActive(ctx) && utils.GetUserRoleFromContext(ctx) == utils.RoleAdmin
}

type caller struct {
	Email  string
	Nombre string
}

func callerOf(c *gin.Context) caller {
	ctx := c.Request.Context()
	return caller{
		Email:  utils.GetUserEmailFromContext(ctx),
		Nombre: utils.GetUserNameFromContext(ctx),
	}
}

type toggleRequest struct {
	Activo *bool `json:"activo"`
}

func bindToggle(c *gin.Context) (bool, bool) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Activo == nil {
		badRequest(c, "Campo requerido: activo")
		return false, false
	}
	return *req.Activo, true
}
