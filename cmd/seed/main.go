// Comando de desarrollo: carga un administrador, un usuario de prueba y
// algunas operaciones de ejemplo. Si ya hay usuarios, no hace nada.
package main

import (
	"context"
	"log"

	"github.com/AgusMolinaCode/Finops_Api.git/internal/config"
	"github.com/AgusMolinaCode/Finops_Api.git/internal/database"
	"github.com/AgusMolinaCode/Finops_Api.git/internal/logger"
	"github.com/AgusMolinaCode/Finops_Api.git/internal/models"
	"github.com/AgusMolinaCode/Finops_Api.git/internal/repository"
	"github.com/AgusMolinaCode/Finops_Api.git/internal/services"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "password123"

var sampleOperations = []models.CreateOperationRequest{
	{Type: models.OperationBuy, Amount: "150.25", Currency: "USD"},
	{Type: models.OperationBuy, Amount: "0.50000000", Currency: "BTC"},
	{Type: models.OperationSell, Amount: "75.00", Currency: "EUR"},
	{Type: models.OperationSell, Amount: "1200", Currency: "USDT"},
}

func main() {
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

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("error al inicializar la base de datos", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db)
	operationRepo := repository.NewOperationRepository(db)
	operationService := services.NewOperationService(db, operationRepo, userRepo, zlog)

	count, err := userRepo.CountUsers(ctx)
	if err != nil {
		zlog.Fatal("error al verificar usuarios existentes", zap.Error(err))
	}
	if count > 0 {
		zlog.Info("la base ya tiene usuarios, seed omitido", zap.Int("count", count))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		zlog.Fatal("error al hashear la contraseña de seed", zap.Error(err))
	}

	admin := &models.User{
		ID:       uuid.NewString(),
		Email:    "admin@finops.local",
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	demo := &models.User{
		ID:       uuid.NewString(),
		Email:    "demo@finops.local",
		Password: string(hash),
		Role:     models.RoleUser,
	}

	for _, user := range []*models.User{admin, demo} {
		if err := userRepo.CreateUser(ctx, user); err != nil {
			zlog.Fatal("error al crear usuario de seed", zap.String("email", user.Email), zap.Error(err))
		}
	}

	for _, req := range sampleOperations {
		if _, err := operationService.Create(ctx, demo.ID, req); err != nil {
			zlog.Fatal("error al crear operación de seed", zap.Error(err))
		}
	}

	zlog.Info("seed completado",
		zap.String("admin", admin.Email),
		zap.String("demo", demo.Email),
		zap.String("password", seedPassword),
		zap.Int("operations", len(sampleOperations)),
	)
}
