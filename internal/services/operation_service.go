package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/AgusMolinaCode/Finops_Api.git/internal/apperrors"
	"github.com/AgusMolinaCode/Finops_Api.git/internal/models"
	"github.com/AgusMolinaCode/Finops_Api.git/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Límites de negocio para la creación de operaciones
const (
	maxOperationsPerUser = 10
	storedDecimals       = 2
)

// Monto máximo por operación (equivalente implícito en USD)
var maxAmount = decimal.NewFromInt(10000)

type OperationService struct {
	db         *sql.DB
	operations *repository.OperationRepository
	users      *repository.UserRepository
	log        *zap.Logger
}

func NewOperationService(db *sql.DB, operations *repository.OperationRepository, users *repository.UserRepository, log *zap.Logger) *OperationService {
	return &OperationService{
		db:         db,
		operations: operations,
		users:      users,
		log:        log,
	}
}

// Create valida, normaliza y persiste una operación nueva. Las lecturas
// de verificación y la inserción corren dentro de una única transacción:
// si cualquier paso falla, no queda ninguna escritura parcial.
//
// El monto siempre se guarda fijado a 2 decimales, aunque las monedas
// cripto se validen con hasta 8: la precisión extra se pierde al
// escribir. El límite de operaciones por usuario cuenta el histórico
// completo, no solo el día corriente.
func (s *OperationService) Create(ctx context.Context, userID string, req models.CreateOperationRequest) (*models.Operation, error) {
	amount, currency, err := validateOperation(req)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.Transaction(err)
	}
	defer tx.Rollback()

	// Verificar que el usuario dueño exista
	exists, err := s.users.Exists(ctx, tx, userID)
	if err != nil {
		return nil, apperrors.Transaction(err)
	}
	if !exists {
		return nil, apperrors.BusinessRule("usuario no encontrado")
	}

	// Límites: monto máximo por operación y tope de operaciones por usuario
	if amount.GreaterThan(maxAmount) {
		return nil, apperrors.BusinessRule("el monto supera el máximo permitido de %s", maxAmount.String())
	}

	count, err := s.operations.CountByUser(ctx, tx, userID)
	if err != nil {
		return nil, apperrors.Transaction(err)
	}
	if count >= maxOperationsPerUser {
		return nil, apperrors.BusinessRule("se alcanzó el límite de %d operaciones por usuario", maxOperationsPerUser)
	}

	op := &models.Operation{
		ID:       uuid.NewString(),
		UserID:   userID,
		Type:     req.Type,
		Amount:   amount.Round(storedDecimals).StringFixed(storedDecimals),
		Currency: currency,
	}

	if err := s.operations.Insert(ctx, tx, op); err != nil {
		return nil, apperrors.Transaction(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.Transaction(err)
	}

	s.log.Info("operación creada",
		zap.String("id", op.ID),
		zap.String("user_id", op.UserID),
		zap.String("type", op.Type),
		zap.String("currency", op.Currency),
	)

	return op, nil
}

// validateOperation aplica la validación estructural: tipo permitido,
// monto decimal positivo y moneda de la lista fija con la precisión de
// su clase. Devuelve el monto parseado y la moneda ya en mayúsculas.
func validateOperation(req models.CreateOperationRequest) (decimal.Decimal, string, error) {
	if req.Type != models.OperationBuy && req.Type != models.OperationSell {
		return decimal.Zero, "", apperrors.Validation("el tipo debe ser BUY o SELL")
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		return decimal.Zero, "", apperrors.Validation("el monto no es un número válido")
	}
	if !amount.IsPositive() {
		return decimal.Zero, "", apperrors.Validation("el monto debe ser mayor a cero")
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if !models.IsAllowedCurrency(currency) {
		return decimal.Zero, "", apperrors.Validation("moneda no permitida: %s", currency)
	}

	if d := decimalsOf(amount); d > models.MaxDecimalsFor(currency) {
		return decimal.Zero, "", apperrors.Validation(
			"la moneda %s admite hasta %d decimales", currency, models.MaxDecimalsFor(currency))
	}

	return amount, currency, nil
}

func decimalsOf(d decimal.Decimal) int {
	if e := d.Exponent(); e < 0 {
		return int(-e)
	}
	return 0
}

// List traduce los parámetros de filtrado a una consulta paginada.
// El total refleja el recuento completo del filtro, independiente de la
// ventana de paginación.
func (s *OperationService) List(ctx context.Context, filter repository.ListFilter) (*models.ListOperationsResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	operations, total, err := s.operations.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Transaction(err)
	}

	return &models.ListOperationsResult{
		Operations: operations,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Stats devuelve los contadores de operaciones. Con userID vacío, el
// agregado es global (uso exclusivo de las rutas de administración).
func (s *OperationService) Stats(ctx context.Context, userID string) (models.OperationStats, error) {
	stats, err := s.operations.Stats(ctx, userID)
	if err != nil {
		return models.OperationStats{}, apperrors.Transaction(err)
	}
	return stats, nil
}
