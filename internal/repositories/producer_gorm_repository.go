package repositories

import (
	"agrofeira/internal/apperrors"
	"agrofeira/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrProducerExists is the client message for a duplicate email or CPF.
const ErrProducerExists = "email or CPF already registered"

// GORMProducerRepository is a GORM implementation of ProducerRepository.
type GORMProducerRepository struct {
	db *gorm.DB
}

// NewGORMProducerRepository creates a new instance of GORMProducerRepository.
func NewGORMProducerRepository(db *gorm.DB) *GORMProducerRepository {
	return &GORMProducerRepository{
		db: db,
	}
}

// Create inserts a new producer. A unique violation on email or cpf is
// reported as a validation error.
func (r *GORMProducerRepository) Create(producer *models.Producer) error {
	if producer.ID == "" {
		producer.ID = uuid.New().String()
	}
	if err := r.db.Omit(clause.Associations).Create(producer).Error; err != nil {
		if isDuplicate(err) {
			return apperrors.Validation(ErrProducerExists)
		}
		return translate(err, "create producer", "producer not found")
	}
	return nil
}

// FindByID retrieves a producer by its ID.
func (r *GORMProducerRepository) FindByID(id string) (*models.Producer, error) {
	var producer models.Producer
	if err := r.db.First(&producer, "id = ?", id).Error; err != nil {
		return nil, translate(err, "get producer by ID", "producer not found")
	}
	return &producer, nil
}

// FindByEmail retrieves a producer by its email.
func (r *GORMProducerRepository) FindByEmail(email string) (*models.Producer, error) {
	var producer models.Producer
	if err := r.db.First(&producer, "email = ?", email).Error; err != nil {
		return nil, translate(err, "get producer by email", "producer not found")
	}
	return &producer, nil
}

// ExistsByEmailOrCPF reports whether any producer already uses email or cpf.
func (r *GORMProducerRepository) ExistsByEmailOrCPF(email, cpf string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Producer{}).
		Where("email = ? OR cpf = ?", email, cpf).
		Count(&count).Error
	if err != nil {
		return false, translate(err, "check producer uniqueness", "producer not found")
	}
	return count > 0, nil
}

// Update writes every column of producer except its creation time.
func (r *GORMProducerRepository) Update(producer *models.Producer) error {
	res := r.db.Model(producer).
		Select("*").
		Omit("CreatedAt", clause.Associations).
		Updates(producer)
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return apperrors.Validation(ErrProducerExists)
		}
		return translate(res.Error, "update producer", "producer not found")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("producer not found")
	}
	return nil
}

// Delete removes the producer and its products in one transaction.
func (r *GORMProducerRepository) Delete(id string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("producer_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Producer{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("producer not found")
		}
		return nil
	})
	return translate(err, "delete producer", "producer not found")
}
