package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solines/hotelquote-api/internal/application/builder"
	"github.com/solines/hotelquote-api/internal/domain/entity"
	"github.com/solines/hotelquote-api/internal/domain/enum"
	"github.com/solines/hotelquote-api/internal/domain/repository"
	"github.com/solines/hotelquote-api/pkg/apperror"
	"github.com/solines/hotelquote-api/pkg/pagination"
)

type fakeQuoteRepo struct {
	created      *entity.Quote
	createdItems []entity.QuoteItem
	createErr    error

	// dupRemaining makes the next N creates collide on the reference index
	dupRemaining int
	references   []string

	quotes []entity.Quote

	documentURL   string
	setURLErr     error
	lastListParam *repository.QuoteFilterParams
}

func (r *fakeQuoteRepo) CreateWithItems(ctx context.Context, quote *entity.Quote, items []entity.QuoteItem) error {
	r.references = append(r.references, quote.Reference)
	if r.createErr != nil {
		return r.createErr
	}
	if r.dupRemaining > 0 {
		r.dupRemaining--
		return repository.ErrDuplicateReference
	}
	quote.ID = uuid.New()
	r.created = quote
	r.createdItems = items
	return nil
}

func (r *fakeQuoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	return r.GetWithItems(ctx, id)
}

func (r *fakeQuoteRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	for i := range r.quotes {
		if r.quotes[i].ID == id {
			return &r.quotes[i], nil
		}
	}
	return nil, nil
}

func (r *fakeQuoteRepo) List(ctx context.Context, params *repository.QuoteFilterParams) ([]entity.Quote, int64, error) {
	r.lastListParam = params
	return r.quotes, int64(len(r.quotes)), nil
}

func (r *fakeQuoteRepo) SetDocumentURL(ctx context.Context, id uuid.UUID, url string) error {
	if r.setURLErr != nil {
		return r.setURLErr
	}
	r.documentURL = url
	return nil
}

func (r *fakeQuoteRepo) GetNextReferenceNumber(ctx context.Context) (int, error) {
	return 1, nil
}

type fakeGenerator struct {
	url   string
	err   error
	calls int
}

func (g *fakeGenerator) Generate(ctx context.Context, quoteID uuid.UUID) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.url, nil
}

func submitInput() *SubmitQuoteInput {
	customerID := uuid.New()
	towels := catalogProducts()[0]
	cost := 14.00
	return &SubmitQuoteInput{
		CreatedByID: uuid.New(),
		CustomerID:  &customerID,
		ProjectName: "Seaside Resort refit",
		Items: []builder.LineItem{
			{Product: towels, Quantity: 2, UnitSalePrice: 12.50, TotalPrice: 25.00},
		},
		DiscountTier: enum.DiscountTen,
		Totals: builder.Totals{
			Subtotal:   25.00,
			GrandTotal: 22.50,
			TotalCost:  &cost,
		},
	}
}

// customerRepoFor seeds a customer repo with the input's selected customer
func customerRepoFor(input *SubmitQuoteInput) *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: []entity.Customer{
		{ID: *input.CustomerID, FullName: "Harbor View Hotel"},
	}}
}

func TestQuoteServiceSubmit(t *testing.T) {
	input := submitInput()
	repo := &fakeQuoteRepo{}
	gen := &fakeGenerator{url: "https://docs.example.com/q-000001.pdf"}
	svc := NewQuoteService(repo, customerRepoFor(input), gen, nil)
	quote, err := svc.Submit(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, quote)

	assert.Equal(t, "Q-000001", quote.Reference)
	assert.Equal(t, "Seaside Resort refit", quote.ProjectName)
	assert.Equal(t, *input.CustomerID, quote.CustomerID)
	assert.Equal(t, 22.50, quote.TotalSalePrice)
	require.NotNil(t, quote.TotalCostPrice)
	assert.Equal(t, 14.00, *quote.TotalCostPrice)
	require.NotNil(t, quote.DiscountApplied)
	assert.Equal(t, "10%", *quote.DiscountApplied)
	require.NotNil(t, quote.DocumentURL)
	assert.Equal(t, gen.url, *quote.DocumentURL)
	assert.Equal(t, gen.url, repo.documentURL)

	require.Len(t, repo.createdItems, 1)
	assert.Equal(t, input.Items[0].Product.ID, repo.createdItems[0].ProductID)
	assert.Equal(t, 2, repo.createdItems[0].Quantity)
	assert.Equal(t, 12.50, repo.createdItems[0].UnitSalePrice)
}

func TestQuoteServiceSubmitNoDiscountRecordsNull(t *testing.T) {
	input := submitInput()
	input.DiscountTier = enum.DiscountNone

	repo := &fakeQuoteRepo{}
	svc := NewQuoteService(repo, customerRepoFor(input), &fakeGenerator{url: "https://d/x.pdf"}, nil)

	quote, err := svc.Submit(context.Background(), input)
	require.NoError(t, err)
	assert.Nil(t, quote.DiscountApplied)
}

func TestQuoteServiceSubmitValidationFailsBeforeRemoteCalls(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SubmitQuoteInput)
		code   int
	}{
		{"missing creator", func(in *SubmitQuoteInput) { in.CreatedByID = uuid.Nil }, 401},
		{"missing customer", func(in *SubmitQuoteInput) { in.CustomerID = nil }, 422},
		{"blank project name", func(in *SubmitQuoteInput) { in.ProjectName = "   " }, 422},
		{"no items", func(in *SubmitQuoteInput) { in.Items = nil }, 422},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := submitInput()
			repo := &fakeQuoteRepo{}
			gen := &fakeGenerator{url: "https://d/x.pdf"}
			svc := NewQuoteService(repo, customerRepoFor(input), gen, nil)

			tt.mutate(input)

			_, err := svc.Submit(context.Background(), input)
			require.Error(t, err)
			assert.Equal(t, tt.code, apperror.GetAppError(err).Code)
			assert.Nil(t, repo.created)
			assert.Equal(t, 0, gen.calls)
		})
	}
}

func TestQuoteServiceSubmitUnknownCustomerFailsBeforeRemoteCalls(t *testing.T) {
	repo := &fakeQuoteRepo{}
	gen := &fakeGenerator{url: "https://d/x.pdf"}
	svc := NewQuoteService(repo, &fakeCustomerRepo{}, gen, nil)

	_, err := svc.Submit(context.Background(), submitInput())
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
	assert.Nil(t, repo.created)
	assert.Equal(t, 0, gen.calls)
}

func TestQuoteServiceSubmitRenumbersOnDuplicateReference(t *testing.T) {
	input := submitInput()
	repo := &fakeQuoteRepo{dupRemaining: 1}
	gen := &fakeGenerator{url: "https://d/x.pdf"}
	svc := NewQuoteService(repo, customerRepoFor(input), gen, nil)

	quote, err := svc.Submit(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, repo.created)

	assert.Equal(t, []string{"Q-000001", "Q-000002"}, repo.references)
	assert.Equal(t, "Q-000002", quote.Reference)
}

func TestQuoteServiceSubmitGivesUpAfterRepeatedDuplicates(t *testing.T) {
	input := submitInput()
	repo := &fakeQuoteRepo{dupRemaining: 3}
	gen := &fakeGenerator{url: "https://d/x.pdf"}
	svc := NewQuoteService(repo, customerRepoFor(input), gen, nil)

	_, err := svc.Submit(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, 500, apperror.GetAppError(err).Code)
	assert.Nil(t, repo.created)
	assert.Equal(t, 0, gen.calls)
	assert.Len(t, repo.references, 3)
}

func TestQuoteServiceSubmitPersistenceFailure(t *testing.T) {
	input := submitInput()
	repo := &fakeQuoteRepo{createErr: errors.New("connection reset")}
	gen := &fakeGenerator{url: "https://d/x.pdf"}
	svc := NewQuoteService(repo, customerRepoFor(input), gen, nil)

	_, err := svc.Submit(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, 500, apperror.GetAppError(err).Code)
	assert.Equal(t, 0, gen.calls)
}

func TestQuoteServiceSubmitDocumentFailureStillReturnsQuote(t *testing.T) {
	input := submitInput()
	repo := &fakeQuoteRepo{}
	gen := &fakeGenerator{err: errors.New("renderer unavailable")}
	svc := NewQuoteService(repo, customerRepoFor(input), gen, nil)

	quote, err := svc.Submit(context.Background(), input)
	require.Error(t, err)
	require.NotNil(t, quote)

	var docErr *DocumentError
	require.ErrorAs(t, err, &docErr)
	assert.Equal(t, quote.ID, docErr.QuoteID)
	assert.Nil(t, quote.DocumentURL)
	// The quote itself was persisted
	assert.NotNil(t, repo.created)
}

func TestQuoteServiceSubmitSetURLFailureStillReturnsQuote(t *testing.T) {
	input := submitInput()
	repo := &fakeQuoteRepo{setURLErr: errors.New("connection reset")}
	gen := &fakeGenerator{url: "https://d/x.pdf"}
	svc := NewQuoteService(repo, customerRepoFor(input), gen, nil)

	quote, err := svc.Submit(context.Background(), input)
	require.Error(t, err)
	require.NotNil(t, quote)

	var docErr *DocumentError
	require.ErrorAs(t, err, &docErr)
	assert.Equal(t, quote.ID, docErr.QuoteID)
}

func TestQuoteServiceGetQuoteSanitizesForEmployee(t *testing.T) {
	cost := 14.00
	itemCost := 7.00
	quote := entity.Quote{
		ID:             uuid.New(),
		TotalCostPrice: &cost,
		Items: []entity.QuoteItem{
			{Product: entity.Product{CostPrice: &itemCost}},
		},
	}
	repo := &fakeQuoteRepo{quotes: []entity.Quote{quote}}
	svc := NewQuoteService(repo, &fakeCustomerRepo{}, &fakeGenerator{}, nil)

	got, err := svc.GetQuote(context.Background(), quote.ID, enum.RoleEmployee)
	require.NoError(t, err)
	assert.Nil(t, got.TotalCostPrice)
	require.Len(t, got.Items, 1)
	assert.Nil(t, got.Items[0].Product.CostPrice)
}

func TestQuoteServiceGetQuoteNotFound(t *testing.T) {
	svc := NewQuoteService(&fakeQuoteRepo{}, &fakeCustomerRepo{}, &fakeGenerator{}, nil)

	_, err := svc.GetQuote(context.Background(), uuid.New(), enum.RoleAdmin)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestQuoteServiceListScopesEmployeesToOwnQuotes(t *testing.T) {
	repo := &fakeQuoteRepo{}
	svc := NewQuoteService(repo, &fakeCustomerRepo{}, &fakeGenerator{}, nil)
	userID := uuid.New()

	_, err := svc.ListQuotes(context.Background(), &ListQuotesInput{
		UserID:     userID,
		Role:       enum.RoleEmployee,
		Pagination: pagination.DefaultPagination(),
	})
	require.NoError(t, err)
	assert.Equal(t, userID, repo.lastListParam.CreatedByID)

	_, err = svc.ListQuotes(context.Background(), &ListQuotesInput{
		UserID:     userID,
		Role:       enum.RoleAdmin,
		Pagination: pagination.DefaultPagination(),
	})
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, repo.lastListParam.CreatedByID)
}

func TestQuoteServiceEmailDocumentRequiresConfiguration(t *testing.T) {
	svc := NewQuoteService(&fakeQuoteRepo{}, &fakeCustomerRepo{}, &fakeGenerator{}, nil)

	err := svc.EmailQuoteDocument(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}
