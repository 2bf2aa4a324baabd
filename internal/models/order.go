package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatusPlaced is the status every new order starts with.
const OrderStatusPlaced = 0

// OrderItem is a line item: a product reference, a quantity and the unit
// price captured when the order was placed. Product is only set on reads and
// is nil once the product is deleted.
type OrderItem struct {
	ID        string  `json:"-" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string  `json:"-" gorm:"type:varchar(36);index;not null"`
	Position  int     `json:"-" gorm:"not null"`
	ProductID string   `json:"product_id" gorm:"type:varchar(36);not null"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int      `json:"quantity" gorm:"not null"`
	Price     float64  `json:"price" gorm:"not null"`
}

func (i *OrderItem) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

// Order represents a customer order.
type Order struct {
	ID              string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerID      string      `json:"customer_id" gorm:"type:varchar(36);index;not null"`
	Customer        *User       `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Items           []OrderItem `json:"products" gorm:"foreignKey:OrderID"`
	TotalPrice      float64     `json:"total_price" gorm:"not null"`
	Status          int         `json:"status" gorm:"not null"`
	ShippingAddress string      `json:"shippingAddress" gorm:"not null"`
	CreatedAt       time.Time   `json:"created_at"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}
