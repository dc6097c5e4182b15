package client

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producer is a producer account as returned by the API.
type Producer struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	EstablishmentName string    `json:"establishmentName"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	CPF               string    `json:"cpf,omitempty"`
	Address           string    `json:"address,omitempty"`
	CreatedAt         time.Time `json:"createdAt,omitempty"`
	UpdatedAt         time.Time `json:"updatedAt,omitempty"`
}

// Category is a product category.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Product is a product with its category and owner embedded.
type Product struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	StockQuantity   decimal.Decimal `json:"stock_quantity"`
	MeasurementUnit string          `json:"measurement_unit"`
	UnitDetails     string          `json:"unit_details"`
	ImageURL        string          `json:"image_url"`
	CategoryID      string          `json:"categoryId"`
	ProducerID      string          `json:"producerId"`
	Category        *Category       `json:"category,omitempty"`
	Producer        *Producer       `json:"producer,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Registration is the body of a sign-up.
type Registration struct {
	Name              string `json:"name"`
	EstablishmentName string `json:"establishmentName,omitempty"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	CPF               string `json:"cpf"`
	Address           string `json:"address"`
	Password          string `json:"password"`
}

// ProfileUpdate changes the caller's profile. Empty fields are ignored by the
// server; EstablishmentName is applied whenever it is non-nil.
type ProfileUpdate struct {
	CurrentPassword   string  `json:"currentPassword"`
	Name              string  `json:"name,omitempty"`
	EstablishmentName *string `json:"establishmentName,omitempty"`
	Phone             string  `json:"phone,omitempty"`
	Address           string  `json:"address,omitempty"`
}

// PasswordChange is the body of a password change.
type PasswordChange struct {
	CurrentPassword    string `json:"currentPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

// ProductInput is the full body of a product create or update.
type ProductInput struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	StockQuantity   decimal.Decimal `json:"stock_quantity"`
	MeasurementUnit string          `json:"measurement_unit"`
	UnitDetails     string          `json:"unit_details"`
	ImageURL        string          `json:"image_url"`
	CategoryID      string          `json:"categoryId"`
}

// ProductQuery narrows ListProducts on the server side.
type ProductQuery struct {
	CategoryID string
	ProducerID string
}
