package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Quote represents a finalized price quote. Quotes are created exactly once
// per successful submission and are never mutated afterwards, except for the
// generated document URL which is filled in after document generation.
type Quote struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Reference       string         `gorm:"size:100;unique;not null" json:"reference"`
	ProjectName     string         `gorm:"size:255;not null" json:"project_name"`
	CustomerID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"customer_id"`
	CreatedByID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"created_by_id"`
	TotalSalePrice  float64        `gorm:"type:decimal(15,2);not null" json:"total_sale_price"`
	TotalCostPrice  *float64       `gorm:"type:decimal(15,2)" json:"total_cost_price,omitempty"`
	DiscountApplied *string        `gorm:"size:10" json:"discount_tier_applied,omitempty"`
	DocumentURL     *string        `gorm:"size:512" json:"generated_pdf_url,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer  *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CreatedBy *User       `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Items     []QuoteItem `gorm:"foreignKey:QuoteID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quote
func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quote model
func (Quote) TableName() string {
	return "quotes"
}

// QuoteItem represents one product line within a persisted quote. The unit
// sale price is frozen at save time and never re-derived from the product.
type QuoteItem struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	QuoteID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"quote_id"`
	ProductID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity      int            `gorm:"not null" json:"quantity"`
	UnitSalePrice float64        `gorm:"type:decimal(15,2);not null" json:"unit_sale_price"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Quote   Quote   `gorm:"foreignKey:QuoteID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quote item
func (qi *QuoteItem) BeforeCreate(tx *gorm.DB) error {
	if qi.ID == uuid.Nil {
		qi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuoteItem model
func (QuoteItem) TableName() string {
	return "quote_items"
}
