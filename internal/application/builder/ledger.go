package builder

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/solines/hotelquote-api/internal/domain/entity"
	"github.com/solines/hotelquote-api/internal/domain/enum"
)

// LineItem is one product's quantity within an in-progress quote. The unit
// sale price is copied from the product when the line is first created and
// never re-read afterwards, so later catalog price changes do not move an
// open quote.
type LineItem struct {
	Product       entity.Product `json:"product"`
	Quantity      int            `json:"quantity"`
	UnitSalePrice float64        `json:"unit_sale_price"`
	TotalPrice    float64        `json:"total_price"`
}

// Totals holds the derived figures for a ledger. TotalCost and ProfitMargin
// are nil unless the viewer's role grants cost visibility; the gate lives in
// the computation, not in presentation.
type Totals struct {
	Subtotal     float64  `json:"subtotal"`
	GrandTotal   float64  `json:"grand_total"`
	TotalCost    *float64 `json:"total_cost,omitempty"`
	ProfitMargin *float64 `json:"profit_margin,omitempty"`
}

// Ledger owns the ordered line items of one in-progress quote plus the
// active discount tier. It is not safe for concurrent use; callers
// serialize access (Draft wraps a Ledger with a mutex).
type Ledger struct {
	items    []*LineItem
	discount enum.DiscountTier
}

// NewLedger creates an empty ledger with no discount applied
func NewLedger() *Ledger {
	return &Ledger{discount: enum.DiscountNone}
}

func (l *Ledger) find(productID uuid.UUID) *LineItem {
	for _, item := range l.items {
		if item.Product.ID == productID {
			return item
		}
	}
	return nil
}

// AddOrMerge adds a product to the ledger, merging into the existing line
// item for the same product if one exists. Non-positive quantities are a
// no-op. At most one line item ever exists per product id.
func (l *Ledger) AddOrMerge(product entity.Product, quantity int) {
	if quantity <= 0 {
		return
	}
	if item := l.find(product.ID); item != nil {
		item.Quantity += quantity
		item.TotalPrice = float64(item.Quantity) * item.UnitSalePrice
		return
	}
	l.items = append(l.items, &LineItem{
		Product:       product,
		Quantity:      quantity,
		UnitSalePrice: product.SalePrice,
		TotalPrice:    product.SalePrice * float64(quantity),
	})
}

// UpdateQuantity sets the quantity of an existing line item, recomputing its
// total from the pinned unit price. A quantity of zero or less removes the
// item. Insertion order is preserved.
func (l *Ledger) UpdateQuantity(productID uuid.UUID, quantity int) {
	if quantity <= 0 {
		l.Remove(productID)
		return
	}
	if item := l.find(productID); item != nil {
		item.Quantity = quantity
		item.TotalPrice = float64(quantity) * item.UnitSalePrice
	}
}

// Remove deletes the line item for the given product if present
func (l *Ledger) Remove(productID uuid.UUID) {
	for i, item := range l.items {
		if item.Product.ID == productID {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return
		}
	}
}

// SetDiscountTier replaces the active discount tier
func (l *Ledger) SetDiscountTier(tier enum.DiscountTier) error {
	if !tier.Valid() {
		return fmt.Errorf("invalid discount tier %q", tier)
	}
	l.discount = tier
	return nil
}

// DiscountTier returns the active discount tier
func (l *Ledger) DiscountTier() enum.DiscountTier {
	return l.discount
}

// Items returns a copy of the line items in insertion order
func (l *Ledger) Items() []LineItem {
	items := make([]LineItem, len(l.items))
	for i, item := range l.items {
		items[i] = *item
	}
	return items
}

// Len returns the number of line items
func (l *Ledger) Len() int {
	return len(l.items)
}

// Totals computes the derived figures for the current state. Cost and margin
// are only populated when the viewer's role can see cost prices; a missing
// product cost counts as zero, and the margin of an empty or fully
// discounted quote is zero.
func (l *Ledger) Totals(role enum.UserRole) Totals {
	var subtotal float64
	for _, item := range l.items {
		subtotal += item.TotalPrice
	}
	grand := subtotal * (1 - l.discount.Fraction())

	totals := Totals{Subtotal: subtotal, GrandTotal: grand}
	if !role.CanViewCost() {
		return totals
	}

	var cost float64
	for _, item := range l.items {
		if item.Product.CostPrice != nil {
			cost += *item.Product.CostPrice * float64(item.Quantity)
		}
	}
	margin := 0.0
	if grand > 0 {
		margin = (grand - cost) / grand
	}
	totals.TotalCost = &cost
	totals.ProfitMargin = &margin
	return totals
}
