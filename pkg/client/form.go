package client

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// PlaceholderImageURL is used when a product is saved without an image.
const PlaceholderImageURL = "https://via.placeholder.com/150"

// ErrMissingFields is returned by Submit before any request is made.
var ErrMissingFields = errors.New("fill in every required field, including the category")

// ProductForm is the editable state of the shared create/edit product form.
// Numeric fields are kept as typed text; a comma is accepted as the decimal
// separator.
type ProductForm struct {
	ProductID       string
	Name            string
	Description     string
	Price           string
	StockQuantity   string
	MeasurementUnit string
	UnitDetails     string
	ImageURL        string
	CategoryID      string

	Categories []Category
}

// IsEditing reports whether the form edits an existing product.
func (f *ProductForm) IsEditing() bool {
	return f.ProductID != ""
}

// LoadProductForm fetches the categories and, when productID is set, the
// product being edited. Both requests run concurrently.
func LoadProductForm(ctx context.Context, c *Client, productID string) (*ProductForm, error) {
	form := &ProductForm{ProductID: productID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		categories, err := c.ListCategories(gctx)
		if err != nil {
			return err
		}
		form.Categories = categories
		return nil
	})

	var product *Product
	if productID != "" {
		g.Go(func() error {
			p, err := c.GetProduct(gctx, productID)
			if err != nil {
				return err
			}
			product = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if product != nil {
		form.Name = product.Name
		form.Description = product.Description
		form.Price = product.Price.String()
		form.StockQuantity = product.StockQuantity.String()
		form.MeasurementUnit = product.MeasurementUnit
		form.UnitDetails = product.UnitDetails
		form.ImageURL = product.ImageURL
		form.CategoryID = product.CategoryID
	}
	return form, nil
}

// Input validates the form locally and converts it to a request body.
func (f *ProductForm) Input() (ProductInput, error) {
	if strings.TrimSpace(f.Name) == "" ||
		strings.TrimSpace(f.Price) == "" ||
		strings.TrimSpace(f.StockQuantity) == "" ||
		strings.TrimSpace(f.MeasurementUnit) == "" ||
		f.CategoryID == "" {
		return ProductInput{}, ErrMissingFields
	}

	price, err := parseAmount(f.Price)
	if err != nil {
		return ProductInput{}, errors.New("price must be a number")
	}
	stock, err := parseAmount(f.StockQuantity)
	if err != nil {
		return ProductInput{}, errors.New("stock quantity must be a number")
	}
	if price.IsNegative() || stock.IsNegative() {
		return ProductInput{}, errors.New("price and stock quantity must not be negative")
	}

	image := strings.TrimSpace(f.ImageURL)
	if image == "" {
		image = PlaceholderImageURL
	}

	return ProductInput{
		Name:            strings.TrimSpace(f.Name),
		Description:     f.Description,
		Price:           price,
		StockQuantity:   stock,
		MeasurementUnit: strings.TrimSpace(f.MeasurementUnit),
		UnitDetails:     f.UnitDetails,
		ImageURL:        image,
		CategoryID:      f.CategoryID,
	}, nil
}

// Submit creates the product, or updates it in edit mode.
func (f *ProductForm) Submit(ctx context.Context, c *Client) (*Product, error) {
	in, err := f.Input()
	if err != nil {
		return nil, err
	}
	if f.IsEditing() {
		return c.UpdateProduct(ctx, f.ProductID, in)
	}
	return c.CreateProduct(ctx, in)
}

func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
}
