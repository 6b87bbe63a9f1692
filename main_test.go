package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"warung/internal/cartlock"
	"warung/internal/config"
	"warung/internal/database"
	"warung/internal/events"
	"warung/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func testDeps(t *testing.T) appDeps {
	t.Helper()
	db, err := database.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared", zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return appDeps{
		cfg: &config.Config{
			JWTSecret: "test_jwt_secret",
			TokenTTL:  time.Hour,
		},
		db:        db,
		locker:    cartlock.NewLocalLocker(),
		publisher: events.NopPublisher{},
		log:       zaptest.NewLogger(t),
	}
}

func TestHealthCheck(t *testing.T) {
	deps := testDeps(t)
	app := newApp(deps)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "up", body["database"])
}

func TestHealthCheck_DatabaseDown(t *testing.T) {
	deps := testDeps(t)
	app := newApp(deps)

	sqlDB, err := deps.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRoutesRequireAuth(t *testing.T) {
	app := newApp(testDeps(t))

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/products"},
		{http.MethodPost, "/api/v1/cart/items"},
		{http.MethodGet, "/api/v1/orders"},
	} {
		resp, err := app.Test(httptest.NewRequest(route.method, route.path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
	}

	// The catalog and the cart are public.
	for _, path := range []string{"/api/v1/products", "/api/v1/cart"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestSeedProducts(t *testing.T) {
	deps := testDeps(t)
	repo := repositories.NewGORMProductRepository(deps.db)

	seedProducts(context.Background(), repo, deps.log)
	products, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 4)

	// A second run leaves a non-empty catalog alone.
	seedProducts(context.Background(), repo, deps.log)
	assert.Equal(t, int64(4), countProducts(t, deps.db))
}

func countProducts(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table("products").Count(&n).Error)
	return n
}
