package main

import (
	"context"
	"log"

	"github.com/AgusMolinaCode/Finops_Api.git/internal/config"
	"github.com/AgusMolinaCode/Finops_Api.git/internal/database"
	"github.com/AgusMolinaCode/Finops_Api.git/internal/logger"
	"github.com/AgusMolinaCode/Finops_Api.git/internal/middleware"
	"github.com/AgusMolinaCode/Finops_Api.git/internal/repository"
	routes "github.com/AgusMolinaCode/Finops_Api.git/internal/server"
	"github.com/AgusMolinaCode/Finops_Api.git/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Cargar variables de entorno
	if err := godotenv.Load(); err != nil {
		log.Printf("No se pudo cargar el archivo .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error de configuración: %v", err)
	}

	zlog, err := logger.New(cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Error al crear el logger: %v", err)
	}
	defer zlog.Sync()

	// Inicializar base de datos
	db, err := database.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("error al inicializar la base de datos", zap.Error(err))
	}
	defer db.Close()

	// Construir repositorios y servicios
	userRepo := repository.NewUserRepository(db)
	operationRepo := repository.NewOperationRepository(db)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, zlog)
	operationService := services.NewOperationService(db, operationRepo, userRepo, zlog)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Crear el router de Gin
	router := gin.New()
	router.Use(gin.Recovery())

	// Configurar CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length"}
	router.Use(cors.New(corsConfig))

	// Configurar las rutas
	routes.RegisterRoutes(router, routes.Handlers{
		Auth:        middleware.NewAuthHandler(authService, cfg.IsDevelopment()),
		Setup:       middleware.NewSetupHandler(authService, cfg.Env, cfg.IsDevelopment()),
		Operations:  middleware.NewOperationHandler(operationService, cfg.IsDevelopment()),
		Admin:       middleware.NewAdminHandler(userRepo, operationService, cfg.IsDevelopment()),
		AuthService: authService,
		Log:         zlog,
	})

	// Iniciar el servidor
	zlog.Info("servidor escuchando", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("error al iniciar el servidor", zap.Error(err))
	}
}
