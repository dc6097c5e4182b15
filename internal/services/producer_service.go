package services

import (
	"errors"
	"strings"

	"agrofeira/internal/apperrors"
	"agrofeira/internal/models"
	"agrofeira/internal/repositories"
	"agrofeira/pkg/cpf"
	"agrofeira/pkg/password"
)

// Client messages shared with the HTTP layer.
const (
	ErrWeakPassword            = "password must have at least 8 characters, with uppercase and lowercase letters and digits only"
	ErrCurrentPasswordRequired = "current password is required"
	ErrCurrentPasswordWrong    = "current password is incorrect"
)

// RegisterInput carries the fields of a new producer account.
type RegisterInput struct {
	Name              string `json:"name" validate:"required"`
	EstablishmentName string `json:"establishmentName"`
	Email             string `json:"email" validate:"required,email"`
	Phone             string `json:"phone" validate:"required"`
	CPF               string `json:"cpf" validate:"required,cpf"`
	Address           string `json:"address" validate:"required"`
	Password          string `json:"password" validate:"required,strongpassword"`
}

// ProfileUpdate is a partial update of a producer's profile. Empty strings
// leave the stored value untouched; a non-nil EstablishmentName is always
// applied, so it can be cleared.
type ProfileUpdate struct {
	CurrentPassword   string  `json:"currentPassword"`
	Name              string  `json:"name"`
	EstablishmentName *string `json:"establishmentName"`
	Phone             string  `json:"phone"`
	Address           string  `json:"address"`
}

// PasswordChange carries the fields of a password change.
type PasswordChange struct {
	CurrentPassword    string `json:"currentPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

// ProducerService handles business logic related to producer accounts.
type ProducerService struct {
	repo       repositories.ProducerRepository
	bcryptCost int
}

// NewProducerService creates a new ProducerService.
func NewProducerService(repo repositories.ProducerRepository, bcryptCost int) *ProducerService {
	return &ProducerService{
		repo:       repo,
		bcryptCost: bcryptCost,
	}
}

// Register creates a producer account with a hashed password and a
// normalized CPF.
func (s *ProducerService) Register(in RegisterInput) (*models.Producer, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.CPF = cpf.Normalize(in.CPF)

	if !cpf.Valid(in.CPF) {
		return nil, apperrors.ValidationFields("validation failed", map[string]string{"cpf": "invalid CPF"})
	}
	if !password.IsStrong(in.Password) {
		return nil, apperrors.ValidationFields("validation failed", map[string]string{"password": ErrWeakPassword})
	}

	exists, err := s.repo.ExistsByEmailOrCPF(in.Email, in.CPF)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Validation(repositories.ErrProducerExists)
	}

	hashed, err := password.Hash(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	producer := &models.Producer{
		Name:              in.Name,
		EstablishmentName: in.EstablishmentName,
		Email:             in.Email,
		Phone:             in.Phone,
		CPF:               in.CPF,
		Address:           in.Address,
		Password:          hashed,
	}
	if err := s.repo.Create(producer); err != nil {
		return nil, err
	}
	return producer, nil
}

// Get retrieves a producer by its ID.
func (s *ProducerService) Get(id string) (*models.Producer, error) {
	return s.repo.FindByID(id)
}

// UpdateProfile applies a profile update on behalf of actorID, which must be
// the producer itself and must confirm its current password.
func (s *ProducerService) UpdateProfile(actorID, id string, in ProfileUpdate) (*models.Producer, error) {
	if actorID != id {
		return nil, apperrors.Forbidden("you can only update your own profile")
	}
	producer, err := s.authorize(id, in.CurrentPassword)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		producer.Name = in.Name
	}
	if in.Phone != "" {
		producer.Phone = in.Phone
	}
	if in.Address != "" {
		producer.Address = in.Address
	}
	if in.EstablishmentName != nil {
		producer.EstablishmentName = *in.EstablishmentName
	}

	if err := s.repo.Update(producer); err != nil {
		return nil, err
	}
	return producer, nil
}

// ChangePassword replaces the password of producer id after verifying the
// current one.
func (s *ProducerService) ChangePassword(actorID, id string, in PasswordChange) error {
	if actorID != id {
		return apperrors.Forbidden("you can only change your own password")
	}
	if in.CurrentPassword == "" || in.NewPassword == "" || in.ConfirmNewPassword == "" {
		return apperrors.Validation("current password, new password and confirmation are required")
	}
	if in.NewPassword != in.ConfirmNewPassword {
		return apperrors.Validation("new password and confirmation do not match")
	}
	if !password.IsStrong(in.NewPassword) {
		return apperrors.ValidationFields("validation failed", map[string]string{"newPassword": ErrWeakPassword})
	}

	producer, err := s.authorize(id, in.CurrentPassword)
	if err != nil {
		return err
	}

	hashed, err := password.Hash(in.NewPassword, s.bcryptCost)
	if err != nil {
		return apperrors.Internal("failed to hash password", err)
	}
	producer.Password = hashed
	return s.repo.Update(producer)
}

// Delete removes producer id and all of its products. The current password
// is required as a step-up check.
func (s *ProducerService) Delete(actorID, id, currentPassword string) error {
	if actorID != id {
		return apperrors.Forbidden("you can only delete your own account")
	}
	if _, err := s.authorize(id, currentPassword); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// authorize loads producer id and checks plain against its password.
func (s *ProducerService) authorize(id, plain string) (*models.Producer, error) {
	producer, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if plain == "" {
		return nil, apperrors.Unauthenticated(ErrCurrentPasswordRequired)
	}
	if err := password.Compare(producer.Password, plain); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, apperrors.Unauthenticated(ErrCurrentPasswordWrong)
		}
		return nil, apperrors.Internal("failed to verify password", err)
	}
	return producer, nil
}
