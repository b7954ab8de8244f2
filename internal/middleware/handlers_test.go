package middleware

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/AgusMolinaCode/Finops_Api.git/internal/models"
	"github.com/AgusMolinaCode/Finops_Api.git/internal/repository"
	"github.com/AgusMolinaCode/Finops_Api.git/internal/services"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testUserID = "7f1c9e4a-0000-0000-0000-000000000001"

var testUser = models.UserSummary{
	ID:    testUserID,
	Email: "demo@finops.local",
	Role:  models.RoleUser,
}

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	mock       sqlmock.Sqlmock
	users      *repository.UserRepository
	auth       *services.AuthService
	operations *services.OperationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := repository.NewUserRepository(db)
	operations := repository.NewOperationRepository(db)
	log := zap.NewNop()

	return &testEnv{
		mock:       mock,
		users:      users,
		auth:       services.NewAuthService(users, "secreto-de-prueba", log),
		operations: services.NewOperationService(db, operations, users, log),
	}
}

// injectUser reemplaza al middleware de autenticación en los tests de handlers.
func injectUser(user models.UserSummary) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(userContextKey, user)
		c.Next()
	}
}

func perform(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestCreateOperationStatusCodes(t *testing.T) {
	t.Run("cuerpo mal formado devuelve 400", func(t *testing.T) {
		env := newTestEnv(t)
		router := gin.New()
		router.POST("/api/operations", injectUser(testUser), NewOperationHandler(env.operations, true).Create)

		resp := perform(router, http.MethodPost, "/api/operations", `{"type":`)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("error de validación devuelve 400", func(t *testing.T) {
		env := newTestEnv(t)
		router := gin.New()
		router.POST("/api/operations", injectUser(testUser), NewOperationHandler(env.operations, true).Create)

		resp := perform(router, http.MethodPost, "/api/operations",
			`{"type":"BUY","amount":"10.00","currency":"XYZ"}`)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Contains(t, resp.Body.String(), "moneda no permitida")
		assert.NoError(t, env.mock.ExpectationsWereMet())
	})

	t.Run("regla de negocio devuelve 422", func(t *testing.T) {
		env := newTestEnv(t)
		env.mock.ExpectBegin()
		env.mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`)).
			WithArgs(testUserID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		env.mock.ExpectRollback()

		router := gin.New()
		router.POST("/api/operations", injectUser(testUser), NewOperationHandler(env.operations, true).Create)

		resp := perform(router, http.MethodPost, "/api/operations",
			`{"type":"BUY","amount":"10.00","currency":"USD"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("creación exitosa devuelve 201 normalizada", func(t *testing.T) {
		env := newTestEnv(t)
		env.mock.ExpectBegin()
		env.mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`)).
			WithArgs(testUserID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		env.mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM operations WHERE user_id = $1`)).
			WithArgs(testUserID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		env.mock.ExpectQuery(`(?s)INSERT INTO operations.*RETURNING created_at`).
			WithArgs(sqlmock.AnyArg(), testUserID, "BUY", "10.50", "USD").
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
		env.mock.ExpectCommit()

		router := gin.New()
		router.POST("/api/operations", injectUser(testUser), NewOperationHandler(env.operations, true).Create)

		resp := perform(router, http.MethodPost, "/api/operations",
			`{"type":"BUY","amount":"10.5","currency":"usd"}`)

		assert.Equal(t, http.StatusCreated, resp.Code)
		assert.Contains(t, resp.Body.String(), `"amount":"10.50"`)
		assert.Contains(t, resp.Body.String(), `"currency":"USD"`)
		assert.NoError(t, env.mock.ExpectationsWereMet())
	})
}

func TestListOperationsResponseShape(t *testing.T) {
	env := newTestEnv(t)
	env.mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM operations WHERE user_id = $1`)).
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	env.mock.ExpectQuery(`(?s)SELECT id, user_id, type, amount, currency, created_at.*LIMIT \$2 OFFSET \$3`).
		WithArgs(testUserID, 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "type", "amount", "currency", "created_at"}).
			AddRow("op-1", testUserID, "SELL", "75.00", "EUR", time.Now()))

	router := gin.New()
	router.GET("/api/operations", injectUser(testUser), NewOperationHandler(env.operations, true).List)

	resp := perform(router, http.MethodGet, "/api/operations?page=1&limit=10", "")

	assert.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, `"operations"`)
	assert.Contains(t, body, `"total":1`)
	assert.Contains(t, body, `"page":1`)
	assert.Contains(t, body, `"limit":10`)
}

func TestLoginFailuresReturnTheSameBody(t *testing.T) {
	queryByEmail := regexp.QuoteMeta(`SELECT id, email, password, role, created_at FROM users WHERE email = $1`)
	hash, err := bcrypt.GenerateFromPassword([]byte("correcta"), bcrypt.MinCost)
	require.NoError(t, err)

	env := newTestEnv(t)
	router := gin.New()
	router.POST("/api/auth/login", NewAuthHandler(env.auth, true).Login)

	// Email inexistente
	env.mock.ExpectQuery(queryByEmail).
		WithArgs("nadie@finops.local").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "role", "created_at"}))
	unknown := perform(router, http.MethodPost, "/api/auth/login",
		`{"email":"nadie@finops.local","password":"loquesea"}`)

	// Contraseña incorrecta
	env.mock.ExpectQuery(queryByEmail).
		WithArgs("demo@finops.local").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "role", "created_at"}).
			AddRow(testUserID, "demo@finops.local", string(hash), models.RoleUser, time.Now()))
	wrongPassword := perform(router, http.MethodPost, "/api/auth/login",
		`{"email":"demo@finops.local","password":"incorrecta"}`)

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	// El cuerpo es idéntico: no se filtra qué usuarios existen
	assert.Equal(t, unknown.Body.String(), wrongPassword.Body.String())
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("sin encabezado devuelve 401", func(t *testing.T) {
		env := newTestEnv(t)
		router := gin.New()
		router.GET("/protegida", Auth(env.auth), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		resp := perform(router, http.MethodGet, "/protegida", "")

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Contains(t, resp.Body.String(), "Token no proporcionado")
	})

	t.Run("token válido deja pasar y resuelve al usuario", func(t *testing.T) {
		env := newTestEnv(t)
		user := &models.User{ID: testUserID, Email: "demo@finops.local", Role: models.RoleUser}
		token, err := env.auth.GenerateToken(user)
		require.NoError(t, err)

		env.mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password, role, created_at FROM users WHERE id = $1`)).
			WithArgs(testUserID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "role", "created_at"}).
				AddRow(user.ID, user.Email, "hash", user.Role, time.Now()))

		router := gin.New()
		router.GET("/protegida", Auth(env.auth), func(c *gin.Context) {
			resolved, ok := currentUser(c)
			require.True(t, ok)
			c.JSON(http.StatusOK, resolved)
		})

		req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), testUserID)
	})
}

func TestAdminOnlyRejectsRegularUsers(t *testing.T) {
	router := gin.New()
	router.GET("/admin", injectUser(testUser), AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	resp := perform(router, http.MethodGet, "/admin", "")

	assert.Equal(t, http.StatusForbidden, resp.Code)
}
