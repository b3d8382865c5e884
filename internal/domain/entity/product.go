package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a hotel-supply product in the catalog. Products are
// immutable from the quote builder's point of view: line items copy the sale
// price at add-time and never re-read it.
type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	SKU         *string        `gorm:"size:100;column:sku;index" json:"sku,omitempty"`
	CostPrice   *float64       `gorm:"type:decimal(15,2)" json:"cost_price,omitempty"`
	SalePrice   float64        `gorm:"type:decimal(15,2);not null" json:"sale_price"`
	ImageURL    *string        `gorm:"size:512" json:"image_url,omitempty"`
	Category    *string        `gorm:"size:100;index" json:"category,omitempty"`
	Tags        []string       `gorm:"serializer:json" json:"tags,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// Matches reports whether the product's name, SKU or any tag contains the
// query as a case-insensitive substring. An empty query matches everything.
func (p *Product) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	if p.SKU != nil && strings.Contains(strings.ToLower(*p.SKU), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// WithoutCost returns a copy of the product with the cost price stripped,
// for viewers whose role does not grant cost visibility.
func (p Product) WithoutCost() Product {
	p.CostPrice = nil
	return p
}
