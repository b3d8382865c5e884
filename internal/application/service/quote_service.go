package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/solines/hotelquote-api/internal/application/builder"
	"github.com/solines/hotelquote-api/internal/domain/entity"
	"github.com/solines/hotelquote-api/internal/domain/enum"
	"github.com/solines/hotelquote-api/internal/domain/repository"
	"github.com/solines/hotelquote-api/internal/infrastructure/docgen"
	"github.com/solines/hotelquote-api/pkg/apperror"
	"github.com/solines/hotelquote-api/pkg/email"
	"github.com/solines/hotelquote-api/pkg/pagination"
)

// DocumentError reports that the quote and its items were persisted but the
// generated document link is missing. Callers surface it distinctly so the
// user knows the quote itself was saved.
type DocumentError struct {
	QuoteID uuid.UUID
	Err     error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("quote %s was saved but document generation failed: %v", e.QuoteID, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// QuoteService coordinates quote submission: it validates the draft state,
// persists the header and items atomically, then requests document
// generation. A persisted quote is never rolled back by a later failure.
type QuoteService struct {
	quoteRepo    repository.QuoteRepository
	customerRepo repository.CustomerRepository
	generator    docgen.Generator
	emailService *email.EmailService
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	customerRepo repository.CustomerRepository,
	generator docgen.Generator,
	emailService *email.EmailService,
) *QuoteService {
	return &QuoteService{
		quoteRepo:    quoteRepo,
		customerRepo: customerRepo,
		generator:    generator,
		emailService: emailService,
	}
}

// SubmitQuoteInput carries a consistent draft snapshot plus the submitting
// user's identity. Totals must have been computed with the submitter's role,
// so cost figures are only recorded when the submitter can see them.
type SubmitQuoteInput struct {
	CreatedByID  uuid.UUID
	CustomerID   *uuid.UUID
	ProjectName  string
	Items        []builder.LineItem
	DiscountTier enum.DiscountTier
	Totals       builder.Totals
}

func (in *SubmitQuoteInput) validate() error {
	if in.CreatedByID == uuid.Nil {
		return apperror.ErrUnauthorized
	}
	if in.CustomerID == nil {
		return apperror.NewValidationError("A customer must be selected before submitting a quote")
	}
	if strings.TrimSpace(in.ProjectName) == "" {
		return apperror.NewValidationError("A project name is required before submitting a quote")
	}
	if len(in.Items) == 0 {
		return apperror.NewValidationError("A quote needs at least one line item")
	}
	return nil
}

// Submit persists the quote and requests its document. All preconditions
// are checked before the first remote call. On a document-generation
// failure the saved quote is returned together with a DocumentError.
func (s *QuoteService) Submit(ctx context.Context, input *SubmitQuoteInput) (*entity.Quote, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	if customer == nil {
		return nil, apperror.NewValidationError("The selected customer no longer exists")
	}

	items := make([]entity.QuoteItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, entity.QuoteItem{
			ProductID:     item.Product.ID,
			Quantity:      item.Quantity,
			UnitSalePrice: item.UnitSalePrice,
		})
	}

	quote, err := s.createNumbered(ctx, input, items)
	if err != nil {
		return nil, err
	}

	documentURL, err := s.generator.Generate(ctx, quote.ID)
	if err != nil {
		return quote, &DocumentError{QuoteID: quote.ID, Err: err}
	}

	if err := s.quoteRepo.SetDocumentURL(ctx, quote.ID, documentURL); err != nil {
		return quote, &DocumentError{QuoteID: quote.ID, Err: err}
	}

	quote.DocumentURL = &documentURL
	return quote, nil
}

// referenceAttempts bounds re-numbering when concurrent submissions collide
// on the same reference.
const referenceAttempts = 3

// createNumbered assigns the next reference number and persists the quote.
// The count-based numbering races under concurrent submissions, so a
// duplicate reference is re-numbered and retried. Header and items are one
// transaction; items never exist without a header and vice versa.
func (s *QuoteService) createNumbered(ctx context.Context, input *SubmitQuoteInput, items []entity.QuoteItem) (*entity.Quote, error) {
	var lastErr error
	for attempt := 0; attempt < referenceAttempts; attempt++ {
		nextNum, err := s.quoteRepo.GetNextReferenceNumber(ctx)
		if err != nil {
			return nil, apperror.NewPersistenceError(err)
		}

		quote := &entity.Quote{
			Reference:       fmt.Sprintf("Q-%06d", nextNum+attempt),
			ProjectName:     strings.TrimSpace(input.ProjectName),
			CustomerID:      *input.CustomerID,
			CreatedByID:     input.CreatedByID,
			TotalSalePrice:  input.Totals.GrandTotal,
			TotalCostPrice:  input.Totals.TotalCost,
			DiscountApplied: input.DiscountTier.Applied(),
		}

		err = s.quoteRepo.CreateWithItems(ctx, quote, items)
		if err == nil {
			return quote, nil
		}
		if !errors.Is(err, repository.ErrDuplicateReference) {
			return nil, apperror.NewPersistenceError(err)
		}
		lastErr = err
	}
	return nil, apperror.NewPersistenceError(lastErr)
}

// GetQuote retrieves a quote with its items, with cost figures stripped for
// viewers without cost visibility
func (s *QuoteService) GetQuote(ctx context.Context, id uuid.UUID, role enum.UserRole) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	sanitizeQuote(quote, role)
	return quote, nil
}

// ListQuotesInput represents the input for listing quotes
type ListQuotesInput struct {
	UserID     uuid.UUID
	Role       enum.UserRole
	Pagination *pagination.PaginationParams
	Search     string
	CustomerID *uuid.UUID
}

// ListQuotes lists saved quotes; employees only see their own
func (s *QuoteService) ListQuotes(ctx context.Context, input *ListQuotesInput) (*pagination.PaginatedResult[entity.Quote], error) {
	params := &repository.QuoteFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		CustomerID: input.CustomerID,
	}
	if input.Role != enum.RoleAdmin {
		params.CreatedByID = input.UserID
	}

	quotes, total, err := s.quoteRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	for i := range quotes {
		sanitizeQuote(&quotes[i], input.Role)
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(quotes, pag), nil
}

// EmailQuoteDocument sends the generated document link to the quote's
// customer
func (s *QuoteService) EmailQuoteDocument(ctx context.Context, id uuid.UUID) error {
	if s.emailService == nil || !s.emailService.IsConfigured() {
		return apperror.NewBadRequestError("Email delivery is not configured")
	}

	quote, err := s.quoteRepo.GetWithItems(ctx, id)
	if err != nil {
		return err
	}
	if quote == nil {
		return apperror.NewNotFoundError("Quote")
	}
	if quote.DocumentURL == nil {
		return apperror.NewBadRequestError("This quote has no generated document yet")
	}
	if quote.Customer == nil || quote.Customer.Email == nil {
		return apperror.NewBadRequestError("The quote's customer has no email address")
	}

	return s.emailService.SendQuoteDocument(*quote.Customer.Email, quote.Customer.FullName, quote.ProjectName, *quote.DocumentURL)
}

// sanitizeQuote strips cost figures for viewers without cost visibility
func sanitizeQuote(quote *entity.Quote, role enum.UserRole) {
	if role.CanViewCost() {
		return
	}
	quote.TotalCostPrice = nil
	for i := range quote.Items {
		quote.Items[i].Product.CostPrice = nil
	}
}
