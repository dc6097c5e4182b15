package repositories

import "agrofeira/internal/models"

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	Create(category *models.Category) error
	FindAll() ([]models.Category, error)
	FindByID(id string) (*models.Category, error)
	FindByName(name string) (*models.Category, error)
	Update(category *models.Category) error
	// Delete removes the category and its products in one transaction.
	Delete(id string) error
}
