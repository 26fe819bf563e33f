package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/oshxona/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))

	return conn
}

func TestSeedIsIdempotent(t *testing.T) {
	conn := newTestDB(t)

	require.NoError(t, Seed(conn))
	require.NoError(t, Seed(conn))

	var categories, products int64
	require.NoError(t, conn.Model(&models.Category{}).Count(&categories).Error)
	require.NoError(t, conn.Model(&models.Product{}).Count(&products).Error)

	assert.EqualValues(t, 6, categories)
	assert.EqualValues(t, 7, products)
}

func TestSeedMenuContents(t *testing.T) {
	conn := newTestDB(t)
	require.NoError(t, Seed(conn))

	var margarita models.Product
	require.NoError(t, conn.First(&margarita, "name = ?", "Margarita").Error)

	assert.EqualValues(t, 35000, margarita.BasePrice)
	require.Len(t, margarita.Sizes, 3)
	assert.EqualValues(t, 10000, margarita.SizeModifier("30cm"))
	assert.EqualValues(t, 5000, margarita.ExtraPrice("Qo'shimcha pishloq"))
	assert.True(t, margarita.Available)

	var first models.Category
	require.NoError(t, conn.Order("position asc").First(&first).Error)
	assert.Equal(t, "Pitsa", first.Name)
}
