package repositories_test

import (
	"fmt"
	"testing"

	"agrofeira/internal/config"
	"agrofeira/internal/database"
	"agrofeira/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupDB opens an isolated in-memory SQLite database with the schema migrated.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := database.Open(config.DBConfig{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func newProducer(email, cpf string) *models.Producer {
	return &models.Producer{
		Name:     "Ana Souza",
		Email:    email,
		Phone:    "11999990000",
		CPF:      cpf,
		Address:  "Rua das Flores, 10",
		Password: "$2a$10$notarealhashbutlongenoughforthetable",
	}
}

func newProduct(name, categoryID, producerID string) *models.Product {
	return &models.Product{
		Name:            name,
		Description:     "fresh",
		Price:           decimal.RequireFromString("12.50"),
		StockQuantity:   decimal.NewFromInt(30),
		MeasurementUnit: "cx",
		ImageURL:        "https://img.example/" + name + ".png",
		CategoryID:      categoryID,
		ProducerID:      producerID,
	}
}
