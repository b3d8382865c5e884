package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/solines/hotelquote-api/internal/domain/entity"
	"github.com/solines/hotelquote-api/internal/domain/enum"
	"github.com/solines/hotelquote-api/internal/domain/repository"
	"github.com/solines/hotelquote-api/pkg/apperror"
)

// CatalogService holds the product and customer catalogs in memory. Both
// lists are fetched once and served from the cache afterwards; a failed
// fetch degrades to empty results with a reported error and is retried on
// the next call. Cost prices are stripped for viewers without cost
// visibility, so the gate sits in front of the wire, not in the UI.
type CatalogService struct {
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository

	mu        sync.RWMutex
	products  []entity.Product
	customers []entity.Customer
	loaded    bool
}

// NewCatalogService creates a new catalog service
func NewCatalogService(productRepo repository.ProductRepository, customerRepo repository.CustomerRepository) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// load fetches both catalogs on first use
func (s *CatalogService) load(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}

	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return apperror.NewRemoteFetchError("products", err)
	}
	customers, err := s.customerRepo.ListAll(ctx)
	if err != nil {
		return apperror.NewRemoteFetchError("customers", err)
	}

	s.products = products
	s.customers = customers
	s.loaded = true
	return nil
}

// Products returns the catalog filtered by the query, sanitized for the
// viewer's role. On a fetch failure the result is empty, never nil-deref
// fatal; the error carries the report.
func (s *CatalogService) Products(ctx context.Context, query string, role enum.UserRole) ([]entity.Product, error) {
	if err := s.load(ctx); err != nil {
		return []entity.Product{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]entity.Product, 0, len(s.products))
	for i := range s.products {
		if !s.products[i].Matches(query) {
			continue
		}
		if role.CanViewCost() {
			filtered = append(filtered, s.products[i])
		} else {
			filtered = append(filtered, s.products[i].WithoutCost())
		}
	}
	return filtered, nil
}

// Customers returns the cached customer list
func (s *CatalogService) Customers(ctx context.Context) ([]entity.Customer, error) {
	if err := s.load(ctx); err != nil {
		return []entity.Customer{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	customers := make([]entity.Customer, len(s.customers))
	copy(customers, s.customers)
	return customers, nil
}

// Lookup finds a catalog product by id. Used when adding line items and when
// validating model suggestions, so only real catalog products ever enter a
// ledger.
func (s *CatalogService) Lookup(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.products {
		if s.products[i].ID == id {
			product := s.products[i]
			return &product, nil
		}
	}
	return nil, nil
}

// Refresh drops the cache so the next call re-fetches the catalogs
func (s *CatalogService) Refresh() {
	s.mu.Lock()
	s.loaded = false
	s.products = nil
	s.customers = nil
	s.mu.Unlock()
}
