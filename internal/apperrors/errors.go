// Package apperrors define los tipos de error del dominio y su mapeo a
// códigos HTTP. Los handlers traducen cualquier error con Status y
// PublicMessage; nunca inspeccionan errores de SQL directamente.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Errores de autenticación. Login devuelve el mismo mensaje para email
// desconocido y contraseña incorrecta, para no revelar qué usuarios existen.
var (
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInvalidToken       = errors.New("token inválido o expirado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
)

// ValidationError indica un dato de entrada mal formado o fuera de rango.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validation construye un ValidationError con el motivo dado.
func Validation(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// BusinessRuleError indica una regla de negocio violada con datos válidos.
type BusinessRuleError struct {
	Reason string
}

func (e *BusinessRuleError) Error() string {
	return e.Reason
}

// BusinessRule construye un BusinessRuleError con el motivo dado.
func BusinessRule(format string, args ...any) *BusinessRuleError {
	return &BusinessRuleError{Reason: fmt.Sprintf(format, args...)}
}

// TransactionError envuelve una falla inesperada de persistencia. La
// transacción completa se revierte y no queda ninguna escritura parcial.
type TransactionError struct {
	Err error
}

func (e *TransactionError) Error() string {
	return "error de transacción: " + e.Err.Error()
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// Transaction envuelve err como falla de persistencia.
func Transaction(err error) *TransactionError {
	return &TransactionError{Err: err}
}

// Status devuelve el código HTTP que corresponde al error.
func Status(err error) int {
	var ve *ValidationError
	var be *BusinessRuleError
	var te *TransactionError

	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &be):
		return http.StatusUnprocessableEntity
	case errors.As(err, &te):
		return http.StatusInternalServerError
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrUserNotFound):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage devuelve el mensaje que se expone al cliente. Fuera de
// desarrollo, los detalles de errores internos se redactan.
func PublicMessage(err error, development bool) string {
	var ve *ValidationError
	var be *BusinessRuleError

	switch {
	case errors.As(err, &ve):
		return ve.Reason
	case errors.As(err, &be):
		return be.Reason
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrUserNotFound):
		return err.Error()
	default:
		if development {
			return err.Error()
		}
		return "error interno del servidor"
	}
}
