package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kitboxworks/kitbox-backend/pkg/db/models"
	"github.com/kitboxworks/kitbox-backend/pkg/enums"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Part{}))
	return db
}

func newCatalogPart(code, reference string, category enums.PartCategory, price string) models.Part {
	return models.Part{
		Code:           code,
		Reference:      reference,
		Category:       category,
		Supplier1Price: decimal.RequireFromString(price),
		StockQuantity:  10,
	}
}

func TestRepositoryGetAllParts_orderedByCode(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	seed := []models.Part{
		newCatalogPart("PNS-42x32-BL", "Side panel 42x32 white", enums.PartCategoryPanel, "8.40"),
		newCatalogPart("BAT-42", "Vertical batten 42", enums.PartCategoryBatten, "2.90"),
		newCatalogPart("CRL-32", "Lateral crossbar 32", enums.PartCategoryCrossbar, "1.95"),
	}
	require.NoError(t, repo.UpsertParts(context.Background(), seed))

	parts, err := repo.GetAllParts(context.Background())
	require.NoError(t, err)
	require.Len(t, parts, 3)
	assert.Equal(t, "BAT-42", parts[0].Code)
	assert.Equal(t, "CRL-32", parts[1].Code)
	assert.Equal(t, "PNS-42x32-BL", parts[2].Code)
}

func TestRepositoryGetPartByCode(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	seed := newCatalogPart("BAT-52", "Vertical batten 52", enums.PartCategoryBatten, "3.40")
	require.NoError(t, repo.UpsertParts(context.Background(), []models.Part{seed}))

	part, err := repo.GetPartByCode(context.Background(), "BAT-52")
	require.NoError(t, err)
	require.NotNil(t, part)
	assert.Equal(t, "Vertical batten 52", part.Reference)
	assert.True(t, part.Supplier1Price.Equal(decimal.RequireFromString("3.40")))

	missing, err := repo.GetPartByCode(context.Background(), "GHOST-1")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepositoryUpsertParts_replacesByCode(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	first := newCatalogPart("HDL-CUP", "Cup handle", enums.PartCategoryHardware, "1.50")
	require.NoError(t, repo.UpsertParts(context.Background(), []models.Part{first}))

	updated := first
	updated.Supplier1Price = decimal.RequireFromString("1.75")
	updated.StockQuantity = 40
	require.NoError(t, repo.UpsertParts(context.Background(), []models.Part{updated}))

	parts, err := repo.GetAllParts(context.Background())
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.True(t, parts[0].Supplier1Price.Equal(decimal.RequireFromString("1.75")))
	assert.Equal(t, 40, parts[0].StockQuantity)
}
