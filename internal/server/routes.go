package routes

import (
	"net/http"
	"time"

	"github.com/AgusMolinaCode/Finops_Api.git/internal/middleware"
	"github.com/AgusMolinaCode/Finops_Api.git/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers agrupa las dependencias ya construidas que necesitan las rutas.
type Handlers struct {
	Auth       *middleware.AuthHandler
	Setup      *middleware.SetupHandler
	Operations *middleware.OperationHandler
	Admin      *middleware.AdminHandler

	AuthService *services.AuthService
	Log         *zap.Logger
}

func RegisterRoutes(router *gin.Engine, h Handlers) {
	router.Use(middleware.RequestLogger(h.Log))

	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"message":   "El servicio está operativo",
		})
	})

	api.GET("/setup/status", h.Setup.Status)
	api.POST("/setup/admin", h.Setup.CreateAdmin)
	api.POST("/auth/login", h.Auth.Login)

	protected := api.Group("/")
	protected.Use(middleware.Auth(h.AuthService))
	{
		protected.POST("/operations", h.Operations.Create)
		protected.GET("/operations", h.Operations.List)
		protected.GET("/operations/stats", h.Operations.Stats)
	}

	// Rutas de admin
	admin := api.Group("/admin")
	admin.Use(middleware.Auth(h.AuthService), middleware.AdminOnly())
	{
		admin.GET("/users", h.Admin.Users)
		admin.GET("/stats", h.Admin.Stats)
	}
}
