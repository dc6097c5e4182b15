package services

import (
	"strings"

	"agrofeira/internal/apperrors"
	"agrofeira/internal/models"
	"agrofeira/internal/repositories"

	"github.com/shopspring/decimal"
)

// Amounts are stored as decimal(10,2).
const amountScale = 2

var maxAmount = decimal.New(1, 8)

// ProductInput carries the fields of a new product. The owner is always the
// authenticated producer and is never read from the input.
type ProductInput struct {
	Name            string           `json:"name" validate:"required"`
	Description     string           `json:"description"`
	Price           *decimal.Decimal `json:"price" validate:"required"`
	StockQuantity   *decimal.Decimal `json:"stock_quantity" validate:"required"`
	MeasurementUnit string           `json:"measurement_unit" validate:"required"`
	UnitDetails     string           `json:"unit_details"`
	ImageURL        string           `json:"image_url" validate:"required"`
	CategoryID      string           `json:"categoryId" validate:"required"`
}

// ProductPatch is a partial product update. Nil fields are left untouched.
type ProductPatch struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	StockQuantity   *decimal.Decimal `json:"stock_quantity"`
	MeasurementUnit *string          `json:"measurement_unit"`
	UnitDetails     *string          `json:"unit_details"`
	ImageURL        *string          `json:"image_url"`
	CategoryID      *string          `json:"categoryId"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	products   repositories.ProductRepository
	categories repositories.CategoryRepository
}

// NewProductService creates a new ProductService.
func NewProductService(products repositories.ProductRepository, categories repositories.CategoryRepository) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
	}
}

// List retrieves products matching filter.
func (s *ProductService) List(filter repositories.ProductFilter) ([]models.Product, error) {
	return s.products.FindAll(filter)
}

// Get retrieves a single product by its ID.
func (s *ProductService) Get(id string) (*models.Product, error) {
	return s.products.FindByID(id)
}

// Create adds a product owned by actorID and returns it with its
// associations loaded.
func (s *ProductService) Create(actorID string, in ProductInput) (*models.Product, error) {
	product := &models.Product{
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		MeasurementUnit: strings.TrimSpace(in.MeasurementUnit),
		UnitDetails:     in.UnitDetails,
		ImageURL:        strings.TrimSpace(in.ImageURL),
		CategoryID:      in.CategoryID,
		ProducerID:      actorID,
	}
	fields := map[string]string{}
	if in.Price == nil {
		fields["price"] = "price is required"
	} else {
		product.Price = *in.Price
	}
	if in.StockQuantity == nil {
		fields["stock_quantity"] = "stock_quantity is required"
	} else {
		product.StockQuantity = *in.StockQuantity
	}

	if err := s.validate(product, fields); err != nil {
		return nil, err
	}
	if err := s.checkCategory(product.CategoryID); err != nil {
		return nil, err
	}

	if err := s.products.Create(product); err != nil {
		return nil, err
	}
	return s.products.FindByID(product.ID)
}

// Update merges patch onto product id. Only the owner may update it.
func (s *ProductService) Update(actorID, id string, patch ProductPatch) (*models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		return nil, err
	}
	if product.ProducerID != actorID {
		return nil, apperrors.Forbidden("you can only update your own products")
	}

	previousCategory := product.CategoryID
	applyPatch(product, patch)

	if err := s.validate(product, map[string]string{}); err != nil {
		return nil, err
	}
	if product.CategoryID != previousCategory {
		if err := s.checkCategory(product.CategoryID); err != nil {
			return nil, err
		}
	}

	if err := s.products.Update(product); err != nil {
		return nil, err
	}
	return s.products.FindByID(id)
}

// Delete removes product id. Only the owner may delete it.
func (s *ProductService) Delete(actorID, id string) error {
	product, err := s.products.FindByID(id)
	if err != nil {
		return err
	}
	if product.ProducerID != actorID {
		return apperrors.Forbidden("you can only delete your own products")
	}
	return s.products.Delete(id)
}

func applyPatch(p *models.Product, patch ProductPatch) {
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.StockQuantity != nil {
		p.StockQuantity = *patch.StockQuantity
	}
	if patch.MeasurementUnit != nil {
		p.MeasurementUnit = strings.TrimSpace(*patch.MeasurementUnit)
	}
	if patch.UnitDetails != nil {
		p.UnitDetails = *patch.UnitDetails
	}
	if patch.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*patch.ImageURL)
	}
	if patch.CategoryID != nil {
		p.CategoryID = *patch.CategoryID
	}
}

// validate adds the product rules to fields and reports them together.
func (s *ProductService) validate(p *models.Product, fields map[string]string) error {
	if p.Name == "" {
		fields["name"] = "name is required"
	}
	if p.MeasurementUnit == "" {
		fields["measurement_unit"] = "measurement_unit is required"
	}
	if p.ImageURL == "" {
		fields["image_url"] = "image_url is required"
	}
	if p.CategoryID == "" {
		fields["categoryId"] = "categoryId is required"
	}
	if _, ok := fields["price"]; !ok {
		if msg := checkAmount("price", p.Price); msg != "" {
			fields["price"] = msg
		}
	}
	if _, ok := fields["stock_quantity"]; !ok {
		if msg := checkAmount("stock_quantity", p.StockQuantity); msg != "" {
			fields["stock_quantity"] = msg
		}
	}
	if len(fields) > 0 {
		return apperrors.ValidationFields("validation failed", fields)
	}
	return nil
}

// checkAmount keeps d within the decimal(10,2) columns that store it.
func checkAmount(field string, d decimal.Decimal) string {
	switch {
	case d.IsNegative():
		return field + " must not be negative"
	case !d.Equal(d.Round(amountScale)):
		return field + " must have at most 2 decimal places"
	case d.GreaterThanOrEqual(maxAmount):
		return field + " must be less than 100000000"
	}
	return ""
}

// checkCategory turns a missing category into a validation error.
func (s *ProductService) checkCategory(id string) error {
	if _, err := s.categories.FindByID(id); err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return apperrors.ValidationFields("validation failed", map[string]string{"categoryId": "category not found"})
		}
		return err
	}
	return nil
}
