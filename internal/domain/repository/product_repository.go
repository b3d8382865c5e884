package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/solines/hotelquote-api/internal/domain/entity"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	// ListAll returns the full visible catalog for the session-level cache
	ListAll(ctx context.Context) ([]entity.Product, error)
}
