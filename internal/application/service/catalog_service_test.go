package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solines/hotelquote-api/internal/domain/entity"
	"github.com/solines/hotelquote-api/internal/domain/enum"
	"github.com/solines/hotelquote-api/pkg/apperror"
)

type fakeProductRepo struct {
	products []entity.Product
	listErr  error
	calls    int
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			return &r.products[i], nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	return r.products, nil
}

func (r *fakeProductRepo) ListAll(ctx context.Context) ([]entity.Product, error) {
	r.calls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.products, nil
}

type fakeCustomerRepo struct {
	customers []entity.Customer
	listErr   error
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	for i := range r.customers {
		if r.customers[i].ID == id {
			return &r.customers[i], nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) ListAll(ctx context.Context) ([]entity.Customer, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.customers, nil
}

func strPtr(s string) *string {
	return &s
}

func costPtr(v float64) *float64 {
	return &v
}

func catalogProducts() []entity.Product {
	return []entity.Product{
		{
			ID:        uuid.New(),
			Name:      "Egyptian Cotton Bath Towel",
			SKU:       strPtr("TWL-100"),
			SalePrice: 12.50,
			CostPrice: costPtr(7.00),
			Tags:      []string{"bathroom", "linen"},
		},
		{
			ID:        uuid.New(),
			Name:      "Lavender Hand Soap",
			SKU:       strPtr("SOP-200"),
			SalePrice: 3.00,
			CostPrice: costPtr(1.20),
			Tags:      []string{"bathroom", "toiletries"},
		},
		{
			ID:        uuid.New(),
			Name:      "King Size Duvet",
			SalePrice: 45.00,
			CostPrice: costPtr(28.00),
			Tags:      []string{"bedroom", "linen"},
		},
	}
}

func TestCatalogServiceProductsFilters(t *testing.T) {
	productRepo := &fakeProductRepo{products: catalogProducts()}
	svc := NewCatalogService(productRepo, &fakeCustomerRepo{})

	products, err := svc.Products(context.Background(), "linen", enum.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Egyptian Cotton Bath Towel", products[0].Name)
	assert.Equal(t, "King Size Duvet", products[1].Name)

	products, err = svc.Products(context.Background(), "twl-100", enum.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, products, 1)

	products, err = svc.Products(context.Background(), "", enum.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestCatalogServiceStripsCostForEmployee(t *testing.T) {
	productRepo := &fakeProductRepo{products: catalogProducts()}
	svc := NewCatalogService(productRepo, &fakeCustomerRepo{})

	products, err := svc.Products(context.Background(), "", enum.RoleEmployee)
	require.NoError(t, err)
	for _, p := range products {
		assert.Nil(t, p.CostPrice)
	}

	products, err = svc.Products(context.Background(), "", enum.RoleAdmin)
	require.NoError(t, err)
	for _, p := range products {
		assert.NotNil(t, p.CostPrice)
	}
}

func TestCatalogServiceCachesAfterFirstLoad(t *testing.T) {
	productRepo := &fakeProductRepo{products: catalogProducts()}
	svc := NewCatalogService(productRepo, &fakeCustomerRepo{})

	_, err := svc.Products(context.Background(), "", enum.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.Customers(context.Background())
	require.NoError(t, err)
	_, err = svc.Products(context.Background(), "soap", enum.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, 1, productRepo.calls)
}

func TestCatalogServiceDegradesToEmptyOnFetchFailure(t *testing.T) {
	productRepo := &fakeProductRepo{listErr: errors.New("connection refused")}
	svc := NewCatalogService(productRepo, &fakeCustomerRepo{})

	products, err := svc.Products(context.Background(), "", enum.RoleAdmin)
	require.Error(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
	assert.Equal(t, 502, apperror.GetAppError(err).Code)
}

func TestCatalogServiceRetriesAfterFailedLoad(t *testing.T) {
	productRepo := &fakeProductRepo{listErr: errors.New("connection refused")}
	svc := NewCatalogService(productRepo, &fakeCustomerRepo{})

	_, err := svc.Products(context.Background(), "", enum.RoleAdmin)
	require.Error(t, err)

	// The upstream recovers; the next call re-fetches
	productRepo.listErr = nil
	productRepo.products = catalogProducts()

	products, err := svc.Products(context.Background(), "", enum.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestCatalogServiceLookup(t *testing.T) {
	products := catalogProducts()
	svc := NewCatalogService(&fakeProductRepo{products: products}, &fakeCustomerRepo{})

	found, err := svc.Lookup(context.Background(), products[1].ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Lavender Hand Soap", found.Name)

	missing, err := svc.Lookup(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCatalogServiceRefreshDropsCache(t *testing.T) {
	productRepo := &fakeProductRepo{products: catalogProducts()}
	svc := NewCatalogService(productRepo, &fakeCustomerRepo{})

	_, err := svc.Products(context.Background(), "", enum.RoleAdmin)
	require.NoError(t, err)

	svc.Refresh()
	_, err = svc.Products(context.Background(), "", enum.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, 2, productRepo.calls)
}
