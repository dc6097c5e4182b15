package repositories

import "agrofeira/internal/models"

// ProducerRepository defines the interface for producer data access.
type ProducerRepository interface {
	Create(producer *models.Producer) error
	FindByID(id string) (*models.Producer, error)
	FindByEmail(email string) (*models.Producer, error)
	ExistsByEmailOrCPF(email, cpf string) (bool, error)
	Update(producer *models.Producer) error
	// Delete removes the producer together with every product it owns.
	Delete(id string) error
}
