package middleware

import (
	"net/http"
	"strconv"

	"github.com/AgusMolinaCode/Finops_Api.git/internal/models"
	"github.com/AgusMolinaCode/Finops_Api.git/internal/repository"
	"github.com/AgusMolinaCode/Finops_Api.git/internal/services"
	"github.com/gin-gonic/gin"
)

type OperationHandler struct {
	operations  *services.OperationService
	development bool
}

func NewOperationHandler(operations *services.OperationService, development bool) *OperationHandler {
	return &OperationHandler{operations: operations, development: development}
}

// Create crea una nueva operación para el usuario autenticado.
func (h *OperationHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuario no autenticado"})
		return
	}

	var req models.CreateOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	operation, err := h.operations.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		respondError(c, err, h.development)
		return
	}

	c.JSON(http.StatusCreated, operation)
}

// List devuelve las operaciones del usuario autenticado, filtradas y
// paginadas según los parámetros de la query.
func (h *OperationHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuario no autenticado"})
		return
	}

	filter := repository.ListFilter{
		UserID:   user.ID,
		Type:     c.Query("type"),
		Currency: c.Query("currency"),
		Search:   c.Query("search"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 10),
	}

	result, err := h.operations.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, h.development)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Stats devuelve los contadores de operaciones del usuario autenticado.
func (h *OperationHandler) Stats(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuario no autenticado"})
		return
	}

	stats, err := h.operations.Stats(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err, h.development)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// queryInt lee un parámetro numérico de la query con valor por defecto.
func queryInt(c *gin.Context, name string, fallback int) int {
	value := c.Query(name)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
