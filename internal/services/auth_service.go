package services

import (
	"context"
	"errors"
	"time"

	"github.com/AgusMolinaCode/Finops_Api.git/internal/apperrors"
	"github.com/AgusMolinaCode/Finops_Api.git/internal/models"
	"github.com/AgusMolinaCode/Finops_Api.git/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Duración de los tokens emitidos. No hay refresh ni revocación: la
// expiración es la única vía de invalidación.
const tokenTTL = 24 * time.Hour

type AuthService struct {
	users  *repository.UserRepository
	secret []byte
	log    *zap.Logger
}

func NewAuthService(users *repository.UserRepository, secret string, log *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		secret: []byte(secret),
		log:    log,
	}
}

// Login verifica las credenciales y emite un token firmado. Tanto el
// email desconocido como la contraseña incorrecta devuelven el mismo
// error, para no revelar qué usuarios existen.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, models.UserSummary, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return "", models.UserSummary{}, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return "", models.UserSummary{}, err
	}

	// Comparación en tiempo constante contra el hash almacenado
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", models.UserSummary{}, apperrors.ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return "", models.UserSummary{}, err
	}

	return token, user.Summary(), nil
}

// GenerateToken firma un token HS256 con el id del usuario, su rol y una
// expiración de 24 horas.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(tokenTTL).Unix(),
	})

	return token.SignedString(s.secret)
}

// Authorize valida la firma y la expiración del token y resuelve el
// usuario embebido. Cualquier falla de verificación devuelve
// ErrInvalidToken; un sujeto que ya no existe, ErrUserNotFound.
func (s *AuthService) Authorize(ctx context.Context, tokenString string) (models.UserSummary, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return models.UserSummary{}, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.UserSummary{}, apperrors.ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return models.UserSummary{}, apperrors.ErrInvalidToken
	}

	user, err := s.users.GetUserByID(ctx, sub)
	if err != nil {
		return models.UserSummary{}, err
	}

	return user.Summary(), nil
}

// SetupStatus informa si falta crear el usuario administrador inicial.
func (s *AuthService) SetupStatus(ctx context.Context) (bool, int, error) {
	count, err := s.users.CountUsers(ctx)
	if err != nil {
		return false, 0, err
	}
	return count == 0, count, nil
}

// SetupAdmin crea el administrador inicial. Solo está permitido cuando
// no existe ningún usuario registrado.
func (s *AuthService) SetupAdmin(ctx context.Context, email, password string) (models.UserSummary, error) {
	count, err := s.users.CountUsers(ctx)
	if err != nil {
		return models.UserSummary{}, err
	}
	if count > 0 {
		return models.UserSummary{}, apperrors.Validation("la configuración inicial ya fue realizada")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.UserSummary{}, err
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: string(hash),
		Role:     models.RoleAdmin,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return models.UserSummary{}, err
	}

	s.log.Info("administrador inicial creado", zap.String("email", user.Email))

	return user.Summary(), nil
}
