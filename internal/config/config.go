package config

import (
	"errors"
	"os"
	"strings"
)

// Config agrupa toda la configuración de la aplicación, leída una sola
// vez al arrancar. Ningún otro paquete consulta variables de entorno.
type Config struct {
	Port           string
	Env            string
	DatabaseURL    string
	JWTSecret      string
	AllowedOrigins []string
}

// Load arma la configuración desde las variables de entorno.
// DATABASE_URL y JWT_SECRET son obligatorias.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        os.Getenv("PORT"),
		Env:         os.Getenv("ENV"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("la variable DATABASE_URL es obligatoria")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("la variable JWT_SECRET es obligatoria")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}

	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins == "" {
		origins = "http://localhost:3000"
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	return cfg, nil
}

// IsDevelopment indica si la aplicación corre en modo desarrollo.
// En ese modo los errores internos se devuelven sin redactar.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
