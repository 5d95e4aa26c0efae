package middleware

import (
	"context"
	"errors"
	"net/http"

	"shogun-be/internal/auth"
	"shogun-be/internal/logger"
	"shogun-be/internal/user"
	"shogun-be/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*user.Identity, error)
}

// AuthMiddleware resolves the caller when a token is present. Requests with a
// missing or rejected token continue anonymously; route guards decide.
func AuthMiddleware(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ExtractAccessToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := a.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, user.ErrInvalidToken) {
					next.ServeHTTP(w, r)
					return
				}
				logger.FromCtx(r.Context()).Error("identity resolution failed", zap.Error(err))
				utils.WriteJSONError(w, "Error interno del servidor", http.StatusInternalServerError)
				return
			}

			ctx := utils.SetUserContext(r.Context(), id.AuthUserID, id.Email, id.Nombre, string(id.Role), id.Active)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func abortAuth(c *gin.Context, status int, msg, code string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg, "code": code})
}

// RequireUser admits any authenticated, active caller.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if _, ok := utils.GetUserIDFromContext(ctx); !ok {
			abortAuth(c, http.StatusUnauthorized, "No autenticado", "AUTH_REQUIRED")
			return
		}
		if !utils.IsUserActive(ctx) {
			abortAuth(c, http.StatusForbidden, "Usuario inactivo", "USER_INACTIVE")
			return
		}
		c.Next()
	}
}

// RequireAdmin admits active admins only.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if _, ok := utils.GetUserIDFromContext(ctx); !ok {
			abortAuth(c, http.StatusUnauthorized, "No autenticado", "AUTH_REQUIRED")
			return
		}
		if !utils.IsUserActive(ctx) {
			abortAuth(c, http.StatusForbidden, "Usuario inactivo", "USER_INACTIVE")
			return
		}
		if utils.GetUserRoleFromContext(ctx) != utils.RoleAdmin {
			abortAuth(c, http.StatusForbidden, "Se requieren permisos de administrador", "ADMIN_REQUIRED")
			return
		}
		c.Next()
	}
}
