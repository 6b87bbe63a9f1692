package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"warung/internal/middleware"
	"warung/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const secret = "middleware_secret"

func signed(t *testing.T, claims jwt.MapClaims, key string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func setupApp() *fiber.App {
	auth := services.NewAuthService(nil, secret, time.Hour, zap.NewNop())
	app := fiber.New()
	whoami := func(c *fiber.Ctx) error {
		return c.SendString(middleware.CustomerID(c))
	}
	app.Get("/required", middleware.AuthRequired(auth, zap.NewNop()), whoami)
	app.Get("/optional", middleware.OptionalAuth(auth, zap.NewNop()), whoami)
	return app
}

func call(t *testing.T, app *fiber.App, path, authHeader string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAuthRequired(t *testing.T) {
	app := setupApp()
	valid := signed(t, jwt.MapClaims{
		"user_id":     "u-1",
		"username":    "alice",
		"customer_id": "c-1",
		"exp":         time.Now().Add(time.Hour).Unix(),
	}, secret)

	status, body := call(t, app, "/required", "Bearer "+valid)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "c-1", body)

	status, _ = call(t, app, "/required", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, app, "/required", "Token "+valid)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, app, "/required", "Bearer "+signed(t, jwt.MapClaims{"customer_id": "c-1"}, "wrong"))
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestOptionalAuth(t *testing.T) {
	app := setupApp()
	valid := signed(t, jwt.MapClaims{"customer_id": "c-2", "exp": time.Now().Add(time.Hour).Unix()}, secret)
	expired := signed(t, jwt.MapClaims{"customer_id": "c-2", "exp": time.Now().Add(-time.Hour).Unix()}, secret)

	status, body := call(t, app, "/optional", "Bearer "+valid)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "c-2", body)

	// Guests and bad tokens both pass through without a customer.
	for _, header := range []string{"", "Bearer " + expired, "garbage"} {
		status, body = call(t, app, "/optional", header)
		assert.Equal(t, http.StatusOK, status)
		assert.Empty(t, body)
	}
}
