package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable item owned by one producer and classified under one
// category. Price and StockQuantity share the unit given by MeasurementUnit
// (price per box, stock in boxes).
type Product struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name            string          `json:"name" gorm:"type:varchar(255);not null"`
	Description     string          `json:"description" gorm:"type:text"`
	Price           decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	StockQuantity   decimal.Decimal `json:"stock_quantity" gorm:"type:decimal(10,2);not null"`
	MeasurementUnit string          `json:"measurement_unit" gorm:"type:varchar(50);not null"`
	UnitDetails     string          `json:"unit_details" gorm:"type:varchar(255)"`
	ImageURL        string          `json:"image_url" gorm:"type:varchar(1024);not null"`
	CategoryID      string          `json:"categoryId" gorm:"type:varchar(36);index;not null"`
	ProducerID      string          `json:"producerId" gorm:"type:varchar(36);index;not null"`
	Category        *Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Producer        *Producer       `json:"producer,omitempty" gorm:"foreignKey:ProducerID"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// MarshalJSON embeds the producer as a ProducerSummary so that product views
// never leak private producer fields.
func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return json.Marshal(struct {
		plain
		Producer *ProducerSummary `json:"producer,omitempty"`
	}{
		plain:    plain(p),
		Producer: p.Producer.Summary(),
	})
}
