package repositories

import "agrofeira/internal/models"

// ProductFilter narrows FindAll. Empty fields match everything.
type ProductFilter struct {
	CategoryID string
	ProducerID string
}

// ProductRepository defines the interface for product data access.
// Reads eager-load the category and the public producer columns.
type ProductRepository interface {
	Create(product *models.Product) error
	FindAll(filter ProductFilter) ([]models.Product, error)
	FindByID(id string) (*models.Product, error)
	Update(product *models.Product) error
	Delete(id string) error
}
