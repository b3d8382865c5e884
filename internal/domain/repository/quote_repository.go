package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/solines/hotelquote-api/internal/domain/entity"
	"github.com/solines/hotelquote-api/pkg/pagination"
)

// ErrDuplicateReference reports that the quote's reference number was taken
// by a concurrent submission. Callers re-number and retry.
var ErrDuplicateReference = errors.New("quote reference already exists")

// QuoteRepository defines the interface for quote data operations. Quotes
// are create/read only: this service never updates or deletes a persisted
// quote beyond attaching the generated document URL.
type QuoteRepository interface {
	// CreateWithItems persists the quote header and all of its items as one
	// atomic operation
	CreateWithItems(ctx context.Context, quote *entity.Quote, items []entity.QuoteItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	List(ctx context.Context, params *QuoteFilterParams) ([]entity.Quote, int64, error)
	SetDocumentURL(ctx context.Context, id uuid.UUID, url string) error
	GetNextReferenceNumber(ctx context.Context) (int, error)
}

// QuoteFilterParams contains filtering parameters for quote queries
type QuoteFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CustomerID *uuid.UUID
	// CreatedByID scopes results to one creator; zero value lists all
	CreatedByID uuid.UUID
}
