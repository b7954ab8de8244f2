package middleware

import (
	"net/http"
	"strings"

	"github.com/AgusMolinaCode/Finops_Api.git/internal/apperrors"
	"github.com/AgusMolinaCode/Finops_Api.git/internal/models"
	"github.com/AgusMolinaCode/Finops_Api.git/internal/services"
	"github.com/gin-gonic/gin"
)

// Clave bajo la que se guarda el usuario autenticado en el contexto
const userContextKey = "user"

// Auth valida el token Bearer del encabezado Authorization y deja el
// resumen del usuario autenticado en el contexto de la petición.
func Auth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token no proporcionado"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		user, err := auth.Authorize(c.Request.Context(), tokenString)
		if err != nil {
			c.JSON(apperrors.Status(err), gin.H{"error": apperrors.PublicMessage(err, false)})
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// AdminOnly exige que el usuario autenticado tenga rol de administrador.
// Debe montarse después de Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok || user.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Se requiere rol de administrador"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentUser recupera el usuario autenticado del contexto.
func currentUser(c *gin.Context) (models.UserSummary, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return models.UserSummary{}, false
	}
	user, ok := value.(models.UserSummary)
	return user, ok
}
