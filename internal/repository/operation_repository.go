package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/AgusMolinaCode/Finops_Api.git/internal/models"
)

// ListFilter son los parámetros de filtrado y paginación del listado.
// UserID es obligatorio; el resto es opcional (string vacío = sin filtro).
type ListFilter struct {
	UserID   string
	Type     string
	Currency string
	Search   string
	Page     int
	Limit    int
}

type OperationRepository struct {
	db *sql.DB
}

func NewOperationRepository(db *sql.DB) *OperationRepository {
	return &OperationRepository{db: db}
}

// Insert persiste la operación usando el Querier dado (normalmente la
// transacción del motor de reglas) y completa el timestamp generado.
func (r *OperationRepository) Insert(ctx context.Context, q Querier, op *models.Operation) error {
	query := `
		INSERT INTO operations (id, user_id, type, amount, currency)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return q.QueryRowContext(ctx, query,
		op.ID, op.UserID, op.Type, op.Amount, op.Currency,
	).Scan(&op.CreatedAt)
}

// CountByUser cuenta todas las operaciones existentes del usuario.
// El recuento es histórico completo, sin filtro de fecha.
func (r *OperationRepository) CountByUser(ctx context.Context, q Querier, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM operations WHERE user_id = $1`
	err := q.QueryRowContext(ctx, query, userID).Scan(&count)
	return count, err
}

// List devuelve la página pedida y el total de registros que cumplen el
// filtro. Los filtros se combinan con AND; la búsqueda libre compara por
// substring, sin distinguir mayúsculas, contra moneda, tipo y monto.
func (r *OperationRepository) List(ctx context.Context, f ListFilter) ([]models.Operation, int, error) {
	where := []string{"user_id = $1"}
	args := []any{f.UserID}

	if f.Type != "" {
		args = append(args, f.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.Currency != "" {
		args = append(args, f.Currency)
		where = append(where, fmt.Sprintf("currency = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(currency ILIKE $%d OR type ILIKE $%d OR amount::text ILIKE $%d)", n, n, n))
	}

	cond := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM operations WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (f.Page - 1) * f.Limit
	args = append(args, f.Limit, offset)
	listQuery := fmt.Sprintf(`
		SELECT id, user_id, type, amount, currency, created_at
		FROM operations
		WHERE %s
		ORDER BY created_at DESC, id
		LIMIT $%d OFFSET $%d`, cond, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	operations := []models.Operation{}
	for rows.Next() {
		var op models.Operation
		err := rows.Scan(
			&op.ID,
			&op.UserID,
			&op.Type,
			&op.Amount,
			&op.Currency,
			&op.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		operations = append(operations, op)
	}

	return operations, total, rows.Err()
}

// Stats devuelve los contadores agregados. Con userID vacío cuenta las
// operaciones de todos los usuarios.
func (r *OperationRepository) Stats(ctx context.Context, userID string) (models.OperationStats, error) {
	var stats models.OperationStats

	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE type = 'BUY'),
		       COUNT(*) FILTER (WHERE type = 'SELL')
		FROM operations`

	var row *sql.Row
	if userID != "" {
		row = r.db.QueryRowContext(ctx, query+` WHERE user_id = $1`, userID)
	} else {
		row = r.db.QueryRowContext(ctx, query)
	}

	err := row.Scan(&stats.Total, &stats.Buys, &stats.Sells)
	return stats, err
}
