package repository

import (
	"context"
	"database/sql"
)

// Querier abstrae *sql.DB y *sql.Tx para que las lecturas y escrituras
// del motor de reglas puedan ejecutarse dentro de una transacción.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
