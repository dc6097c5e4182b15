package models

import "time"

// Producer is a seller account. Password always holds a bcrypt hash and is
// never serialized.
type Producer struct {
	ID                string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name              string    `json:"name" gorm:"type:varchar(255);not null"`
	EstablishmentName string    `json:"establishmentName" gorm:"type:varchar(255)"`
	Email             string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Phone             string    `json:"phone" gorm:"type:varchar(50);not null"`
	CPF               string    `json:"cpf" gorm:"column:cpf;uniqueIndex;type:varchar(11);not null"`
	Address           string    `json:"address" gorm:"type:varchar(255);not null"`
	Password          string    `json:"-" gorm:"type:varchar(255);not null"`
	Products          []Product `json:"products,omitempty" gorm:"foreignKey:ProducerID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ProducerSummary is the public subset of a producer embedded in product views.
type ProducerSummary struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	EstablishmentName string `json:"establishmentName"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
}

// Summary returns the public subset of p, or nil when p is nil.
func (p *Producer) Summary() *ProducerSummary {
	if p == nil {
		return nil
	}
	return &ProducerSummary{
		ID:                p.ID,
		Name:              p.Name,
		EstablishmentName: p.EstablishmentName,
		Email:             p.Email,
		Phone:             p.Phone,
	}
}
