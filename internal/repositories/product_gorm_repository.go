package repositories

import (
	"agrofeira/internal/apperrors"
	"agrofeira/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// producerPublicColumns are the only producer columns loaded alongside a product.
var producerPublicColumns = []string{"id", "name", "establishment_name", "email", "phone"}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

func (r *GORMProductRepository) withAssociations() *gorm.DB {
	return r.db.
		Preload("Category").
		Preload("Producer", func(db *gorm.DB) *gorm.DB {
			return db.Select(producerPublicColumns)
		})
}

// FindAll retrieves products matching filter, newest first.
func (r *GORMProductRepository) FindAll(filter ProductFilter) ([]models.Product, error) {
	query := r.withAssociations()
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.ProducerID != "" {
		query = query.Where("producer_id = ?", filter.ProducerID)
	}

	products := []models.Product{}
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, translate(err, "get all products", "product not found")
	}
	return products, nil
}

// FindByID retrieves a single product with its category and producer.
func (r *GORMProductRepository) FindByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.withAssociations().First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(err, "get product by ID", "product not found")
	}
	return &product, nil
}

// Create inserts a new product. Associations are never written through it.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Omit(clause.Associations).Create(product).Error; err != nil {
		return translate(err, "create product", "product not found")
	}
	return nil
}

// Update writes every column of product except its creation time.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Model(product).
		Select("*").
		Omit("CreatedAt", clause.Associations).
		Updates(product)
	if res.Error != nil {
		return translate(res.Error, "update product", "product not found")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product not found")
	}
	return nil
}

// Delete removes a product by its ID.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "delete product", "product not found")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product not found")
	}
	return nil
}
