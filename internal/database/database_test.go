package database_test

import (
	"context"
	"testing"

	"warung/internal/database"
	"warung/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared", zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := database.Open("oracle", "whatever", zap.NewNop())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestMigrate_OneOpenOrderPerCustomer(t *testing.T) {
	db := openTestDB(t)

	customer := models.Customer{Name: "alice"}
	require.NoError(t, db.Create(&customer).Error)

	first := models.Order{CustomerID: &customer.ID}
	require.NoError(t, db.Create(&first).Error)

	second := models.Order{CustomerID: &customer.ID}
	err := db.Create(&second).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// Completed orders do not count against the open-order constraint.
	require.NoError(t, db.Model(&first).Update("complete", true).Error)
	require.NoError(t, db.Create(&models.Order{CustomerID: &customer.ID}).Error)

	var open int64
	require.NoError(t, db.Model(&models.Order{}).Where("customer_id = ? AND complete = ?", customer.ID, false).Count(&open).Error)
	assert.Equal(t, int64(1), open)
}

func TestMigrate_OneLinePerProduct(t *testing.T) {
	db := openTestDB(t)

	product := models.Product{Name: "Shirt"}
	require.NoError(t, db.Create(&product).Error)
	order := models.Order{}
	require.NoError(t, db.Create(&order).Error)

	require.NoError(t, db.Create(&models.OrderItem{OrderID: &order.ID, ProductID: &product.ID}).Error)
	err := db.Create(&models.OrderItem{OrderID: &order.ID, ProductID: &product.ID}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestPing(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, database.Ping(context.Background(), db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	assert.Error(t, database.Ping(context.Background(), db))
}

func TestOpen_LogsThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	db, err := database.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared", zap.New(core))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	logs.TakeAll()

	// A lookup without a row is not worth a warning.
	var product models.Product
	err = db.First(&product, "id = ?", "missing").Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Zero(t, logs.Len())

	// A failing statement is.
	assert.Error(t, db.Exec("SELECT * FROM no_such_table").Error)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "gorm", entry.LoggerName)
	assert.Contains(t, entry.Message, "no_such_table")
}
