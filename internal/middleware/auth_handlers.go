package middleware

import (
	"net/http"

	"github.com/AgusMolinaCode/Finops_Api.git/internal/apperrors"
	"github.com/AgusMolinaCode/Finops_Api.git/internal/services"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth        *services.AuthService
	development bool
}

func NewAuthHandler(auth *services.AuthService, development bool) *AuthHandler {
	return &AuthHandler{auth: auth, development: development}
}

// Login autentica por email y contraseña y devuelve el token firmado
// junto con la vista pública del usuario.
func (h *AuthHandler) Login(c *gin.Context) {
	var login struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&login); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), login.Email, login.Password)
	if err != nil {
		respondError(c, err, h.development)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// respondError mapea cualquier error del dominio a su código HTTP y
// mensaje público.
func respondError(c *gin.Context, err error, development bool) {
	c.JSON(apperrors.Status(err), gin.H{"error": apperrors.PublicMessage(err, development)})
}
