package middleware

import (
	"net/http"

	"github.com/AgusMolinaCode/Finops_Api.git/internal/services"
	"github.com/gin-gonic/gin"
)

type SetupHandler struct {
	auth        *services.AuthService
	env         string
	development bool
}

func NewSetupHandler(auth *services.AuthService, env string, development bool) *SetupHandler {
	return &SetupHandler{auth: auth, env: env, development: development}
}

// Status informa si falta crear el administrador inicial.
func (h *SetupHandler) Status(c *gin.Context) {
	needsSetup, count, err := h.auth.SetupStatus(c.Request.Context())
	if err != nil {
		respondError(c, err, h.development)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"needsSetup":  needsSetup,
		"userCount":   count,
		"environment": h.env,
	})
}

// CreateAdmin crea el usuario administrador inicial. Falla con 400 si ya
// existe algún usuario o si faltan campos.
func (h *SetupHandler) CreateAdmin(c *gin.Context) {
	var setup struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&setup); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.SetupAdmin(c.Request.Context(), setup.Email, setup.Password)
	if err != nil {
		respondError(c, err, h.development)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Administrador creado exitosamente",
		"user":    user,
	})
}
