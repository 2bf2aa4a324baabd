package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents an item in the catalog. Category is only set on reads.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null;index"`
	Description string    `json:"description"`
	Price       float64   `json:"price" gorm:"not null;index"`
	CategoryID  string    `json:"category_id" gorm:"type:varchar(36);index"`
	Category    *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Images      []string  `json:"images" gorm:"serializer:json"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
