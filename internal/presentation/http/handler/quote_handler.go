package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/solines/hotelquote-api/internal/application/service"
	"github.com/solines/hotelquote-api/internal/domain/enum"
	"github.com/solines/hotelquote-api/internal/presentation/http/dto/response"
	"github.com/solines/hotelquote-api/pkg/pagination"
)

// QuoteHandler handles saved-quote HTTP requests
type QuoteHandler struct {
	quoteService *service.QuoteService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// List handles listing saved quotes
// @Summary List Quotes
// @Description List saved quotes; employees only see their own
// @Tags quotes
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search by reference or project name"
// @Param customer_id query string false "Filter by customer"
// @Success 200 {object} response.APIResponse
// @Router /quotes [get]
func (h *QuoteHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	params.Validate()

	var customerID *uuid.UUID
	if raw := c.Query("customer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		customerID = &id
	}

	result, err := h.quoteService.ListQuotes(c.Request.Context(), &service.ListQuotesInput{
		UserID:     *userID,
		Role:       GetUserRole(c),
		Pagination: &params,
		Search:     c.Query("search"),
		CustomerID: customerID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Quotes retrieved successfully", result)
}

// Get handles retrieving one saved quote with its items
// @Summary Get Quote
// @Description Get a saved quote and its line items
// @Tags quotes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /quotes/{id} [get]
func (h *QuoteHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	role := GetUserRole(c)
	quote, err := h.quoteService.GetQuote(c.Request.Context(), quoteID, role)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Employees only see their own quotes
	if role != enum.RoleAdmin && quote.CreatedByID != *userID {
		response.NotFound(c, "Quote not found")
		return
	}

	response.OK(c, "Quote retrieved successfully", gin.H{"quote": quote})
}

// EmailDocument sends the quote's generated document link to its customer
// @Summary Email Quote Document
// @Description Email the generated document link to the quote's customer
// @Tags quotes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /quotes/{id}/email [post]
func (h *QuoteHandler) EmailDocument(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	role := GetUserRole(c)
	quote, err := h.quoteService.GetQuote(c.Request.Context(), quoteID, role)
	if err != nil {
		response.Error(c, err)
		return
	}
	if role != enum.RoleAdmin && quote.CreatedByID != *userID {
		response.NotFound(c, "Quote not found")
		return
	}

	if err := h.quoteService.EmailQuoteDocument(c.Request.Context(), quoteID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote document emailed successfully", nil)
}
