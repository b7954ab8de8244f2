package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// Connect abre el pool de conexiones a Postgres y prepara el esquema.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	// Límites del pool: el acceso concurrente al store queda acotado acá
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}

	if err := createSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func createSchema(ctx context.Context, db *sql.DB) error {
	// Crear tabla de usuarios si no existe
	createUsersSQL := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`

	if _, err := db.ExecContext(ctx, createUsersSQL); err != nil {
		return err
	}

	// Crear tabla de operaciones (compra/venta) si no existe
	createOperationsSQL := `
	CREATE TABLE IF NOT EXISTS operations (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		type TEXT NOT NULL,
		amount NUMERIC(18,2) NOT NULL,
		currency TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`

	if _, err := db.ExecContext(ctx, createOperationsSQL); err != nil {
		return err
	}

	// Índice para las consultas por usuario ordenadas por fecha
	createIndexSQL := `
	CREATE INDEX IF NOT EXISTS idx_operations_user_created
	ON operations(user_id, created_at DESC);`

	_, err := db.ExecContext(ctx, createIndexSQL)
	return err
}
