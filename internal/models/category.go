package models

// Category is a classification shared by every producer's products.
type Category struct {
	ID       string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name     string    `json:"name" gorm:"uniqueIndex;type:varchar(100);not null"`
	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}
