package logger

import "go.uber.org/zap"

// New construye el logger de la aplicación. En desarrollo usa el formato
// legible de consola; en cualquier otro entorno, JSON de producción.
func New(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
