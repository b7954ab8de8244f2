package models

import "time"

// Tipos de operación permitidos
const (
	OperationBuy  = "BUY"
	OperationSell = "SELL"
)

// Operation es un registro de compra o venta. El modelo es de solo
// inserción: ninguna ruta expuesta actualiza ni elimina operaciones.
type Operation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Amount    string    `json:"amount"` // decimal como string, fijado a 2 decimales
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateOperationRequest es el cuerpo de POST /api/operations.
// El monto llega como string decimal para no perder precisión en el parseo.
type CreateOperationRequest struct {
	Type     string `json:"type" binding:"required"`
	Amount   string `json:"amount" binding:"required"`
	Currency string `json:"currency" binding:"required"`
}

// ListOperationsResult es la página de resultados de GET /api/operations.
type ListOperationsResult struct {
	Operations []Operation `json:"operations"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
}

// OperationStats son los contadores agregados de operaciones.
type OperationStats struct {
	Total int `json:"total"`
	Buys  int `json:"buys"`
	Sells int `json:"sells"`
}
