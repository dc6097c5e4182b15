package services

import (
	"strings"

	"agrofeira/internal/apperrors"
	"agrofeira/internal/models"
	"agrofeira/internal/repositories"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{
		repo: repo,
	}
}

// List retrieves all categories.
func (s *CategoryService) List() ([]models.Category, error) {
	return s.repo.FindAll()
}

// Get retrieves a single category by its ID.
func (s *CategoryService) Get(id string) (*models.Category, error) {
	return s.repo.FindByID(id)
}

// Create adds a category with a unique name.
func (s *CategoryService) Create(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if err := s.checkName(name, ""); err != nil {
		return nil, err
	}

	category := &models.Category{Name: name}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update renames category id.
func (s *CategoryService) Update(id, name string) (*models.Category, error) {
	category, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if err := s.checkName(name, id); err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes category id together with its products.
func (s *CategoryService) Delete(id string) error {
	return s.repo.Delete(id)
}

// checkName rejects an empty name or one already used by another category.
func (s *CategoryService) checkName(name, selfID string) error {
	if name == "" {
		return apperrors.ValidationFields("validation failed", map[string]string{"name": "name is required"})
	}
	existing, err := s.repo.FindByName(name)
	switch {
	case err == nil && existing.ID != selfID:
		return apperrors.Validation(repositories.ErrCategoryExists)
	case err != nil && !apperrors.Is(err, apperrors.KindNotFound):
		return err
	}
	return nil
}
