package repositories

import (
	"agrofeira/internal/apperrors"
	"agrofeira/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrCategoryExists is the client message for a duplicate category name.
const ErrCategoryExists = "category already exists"

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// Create inserts a new category.
func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if err := r.db.Omit(clause.Associations).Create(category).Error; err != nil {
		if isDuplicate(err) {
			return apperrors.Validation(ErrCategoryExists)
		}
		return translate(err, "create category", "category not found")
	}
	return nil
}

// FindAll retrieves every category ordered by name.
func (r *GORMCategoryRepository) FindAll() ([]models.Category, error) {
	categories := []models.Category{}
	if err := r.db.Order("name").Find(&categories).Error; err != nil {
		return nil, translate(err, "get all categories", "category not found")
	}
	return categories, nil
}

// FindByID retrieves a category by its ID.
func (r *GORMCategoryRepository) FindByID(id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, translate(err, "get category by ID", "category not found")
	}
	return &category, nil
}

// FindByName retrieves a category by its exact name.
func (r *GORMCategoryRepository) FindByName(name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "name = ?", name).Error; err != nil {
		return nil, translate(err, "get category by name", "category not found")
	}
	return &category, nil
}

// Update renames a category.
func (r *GORMCategoryRepository) Update(category *models.Category) error {
	res := r.db.Model(category).Select("Name").Updates(category)
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return apperrors.Validation(ErrCategoryExists)
		}
		return translate(res.Error, "update category", "category not found")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("category not found")
	}
	return nil
}

// Delete removes the category and every product classified under it.
func (r *GORMCategoryRepository) Delete(id string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Category{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("category not found")
		}
		return nil
	})
	return translate(err, "delete category", "category not found")
}
