package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/solines/hotelquote-api/internal/domain/entity"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	// ListAll returns every customer for the session-level cache
	ListAll(ctx context.Context) ([]entity.Customer, error)
}
