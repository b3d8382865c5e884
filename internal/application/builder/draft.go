package builder

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/solines/hotelquote-api/internal/domain/entity"
	"github.com/solines/hotelquote-api/internal/domain/enum"
)

// Draft is one in-progress quote session: a ledger plus the customer
// selection and project name needed for submission. Every mutation goes
// through the draft's mutex, which is what serializes concurrent handler
// calls racing on the same session, and bumps the revision so stale results
// from superseded remote calls can be detected.
type Draft struct {
	ID          uuid.UUID
	CreatedByID uuid.UUID

	mu          sync.Mutex
	ledger      *Ledger
	customerID  *uuid.UUID
	projectName string
	revision    int64
	lastActive  time.Time
}

// BatchItem is one entry of a suggestion batch to merge into the ledger
type BatchItem struct {
	Product  entity.Product
	Quantity int
}

// Snapshot is a consistent read of a draft taken under its lock
type Snapshot struct {
	ID           uuid.UUID         `json:"id"`
	CustomerID   *uuid.UUID        `json:"customer_id,omitempty"`
	ProjectName  string            `json:"project_name"`
	Items        []LineItem        `json:"items"`
	DiscountTier enum.DiscountTier `json:"discount_tier"`
	Totals       Totals            `json:"totals"`
	Revision     int64             `json:"revision"`
}

func newDraft(createdBy uuid.UUID) *Draft {
	return &Draft{
		ID:          uuid.New(),
		CreatedByID: createdBy,
		ledger:      NewLedger(),
		lastActive:  time.Now(),
	}
}

func (d *Draft) touch() {
	d.revision++
	d.lastActive = time.Now()
}

// AddItem merges a product and quantity into the ledger
func (d *Draft) AddItem(product entity.Product, quantity int) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ledger.AddOrMerge(product, quantity)
	d.touch()
	return d.revision
}

// MergeBatch applies a suggestion batch in order against the
// already-updated ledger state, so repeated products within one batch
// collapse into a single merged line. The batch is applied under one lock
// acquisition: readers never observe a half-applied batch.
func (d *Draft) MergeBatch(items []BatchItem) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, item := range items {
		d.ledger.AddOrMerge(item.Product, item.Quantity)
	}
	d.touch()
	return d.revision
}

// UpdateQuantity sets a line item's quantity; zero or less removes it
func (d *Draft) UpdateQuantity(productID uuid.UUID, quantity int) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ledger.UpdateQuantity(productID, quantity)
	d.touch()
	return d.revision
}

// RemoveItem deletes a line item if present
func (d *Draft) RemoveItem(productID uuid.UUID) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ledger.Remove(productID)
	d.touch()
	return d.revision
}

// SetDiscountTier replaces the active discount tier
func (d *Draft) SetDiscountTier(tier enum.DiscountTier) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.ledger.SetDiscountTier(tier); err != nil {
		return err
	}
	d.touch()
	return nil
}

// SetCustomer selects the customer the quote is for
func (d *Draft) SetCustomer(customerID *uuid.UUID) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.customerID = customerID
	d.touch()
	return d.revision
}

// SetProjectName sets the project name used on submission
func (d *Draft) SetProjectName(name string) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.projectName = name
	d.touch()
	return d.revision
}

// Snapshot returns a consistent view of the draft for the given viewer role.
// Line item products are stripped of their cost price when the role has no
// cost visibility; the ledger keeps the raw products internally for the
// totals computation.
func (d *Draft) Snapshot(role enum.UserRole) Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	items := d.ledger.Items()
	if !role.CanViewCost() {
		for i := range items {
			items[i].Product = items[i].Product.WithoutCost()
		}
	}

	return Snapshot{
		ID:           d.ID,
		CustomerID:   d.customerID,
		ProjectName:  d.projectName,
		Items:        items,
		DiscountTier: d.ledger.DiscountTier(),
		Totals:       d.ledger.Totals(role),
		Revision:     d.revision,
	}
}
