package middleware

import (
	"net/http"

	"github.com/AgusMolinaCode/Finops_Api.git/internal/repository"
	"github.com/AgusMolinaCode/Finops_Api.git/internal/services"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	users       *repository.UserRepository
	operations  *services.OperationService
	development bool
}

func NewAdminHandler(users *repository.UserRepository, operations *services.OperationService, development bool) *AdminHandler {
	return &AdminHandler{users: users, operations: operations, development: development}
}

// Users lista todos los usuarios registrados (solo administradores).
func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.users.GetAllUsers(c.Request.Context())
	if err != nil {
		respondError(c, err, h.development)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// Stats devuelve los contadores globales de operaciones, sin acotar a un
// usuario (solo administradores).
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.operations.Stats(c.Request.Context(), "")
	if err != nil {
		respondError(c, err, h.development)
		return
	}

	c.JSON(http.StatusOK, stats)
}
