package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/solines/hotelquote-api/internal/application/builder"
	"github.com/solines/hotelquote-api/internal/application/service"
	"github.com/solines/hotelquote-api/internal/domain/enum"
	"github.com/solines/hotelquote-api/internal/presentation/http/dto/request"
	"github.com/solines/hotelquote-api/internal/presentation/http/dto/response"
	"github.com/solines/hotelquote-api/pkg/apperror"
)

// DraftHandler handles quote draft sessions: creating them, editing their
// line items, requesting suggestions and submitting them as quotes
type DraftHandler struct {
	store             *builder.Store
	catalogService    *service.CatalogService
	suggestionService *service.SuggestionService
	quoteService      *service.QuoteService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(
	store *builder.Store,
	catalogService *service.CatalogService,
	suggestionService *service.SuggestionService,
	quoteService *service.QuoteService,
) *DraftHandler {
	return &DraftHandler{
		store:             store,
		catalogService:    catalogService,
		suggestionService: suggestionService,
		quoteService:      quoteService,
	}
}

// getDraft resolves the draft from the path and checks ownership
func (h *DraftHandler) getDraft(c *gin.Context) *builder.Draft {
	draftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid draft ID")
		return nil
	}

	draft, ok := h.store.Get(draftID)
	if !ok {
		response.NotFound(c, "Draft not found")
		return nil
	}

	userID := GetUserID(c)
	if userID == nil || draft.CreatedByID != *userID {
		response.NotFound(c, "Draft not found")
		return nil
	}

	return draft
}

// CreateDraft starts a new quote draft session
// @Summary Create Draft
// @Description Start a new empty quote draft
// @Tags drafts
// @Security BearerAuth
// @Produce json
// @Success 201 {object} response.APIResponse
// @Router /drafts [post]
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	draft := h.store.Create(*userID)
	response.Created(c, "Draft created successfully", draft.Snapshot(GetUserRole(c)))
}

// GetDraft returns the current state of a draft
// @Summary Get Draft
// @Description Get a draft's items, discount and totals
// @Tags drafts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /drafts/{id} [get]
func (h *DraftHandler) GetDraft(c *gin.Context) {
	draft := h.getDraft(c)
	if draft == nil {
		return
	}

	response.OK(c, "Draft retrieved successfully", draft.Snapshot(GetUserRole(c)))
}

// UpdateDraft updates a draft's customer selection and project name
// @Summary Update Draft
// @Description Update draft metadata
// @Tags drafts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body request.UpdateDraftRequest true "Fields to update"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /drafts/{id} [patch]
func (h *DraftHandler) UpdateDraft(c *gin.Context) {
	draft := h.getDraft(c)
	if draft == nil {
		return
	}

	var req request.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if req.CustomerID != nil {
		if *req.CustomerID == "" {
			draft.SetCustomer(nil)
		} else {
			customerID, err := uuid.Parse(*req.CustomerID)
			if err != nil {
				response.BadRequest(c, "Invalid customer ID")
				return
			}
			draft.SetCustomer(&customerID)
		}
	}
	if req.ProjectName != nil {
		draft.SetProjectName(*req.ProjectName)
	}

	response.OK(c, "Draft updated successfully", draft.Snapshot(GetUserRole(c)))
}

// DeleteDraft discards a draft session
// @Summary Delete Draft
// @Description Discard a draft without submitting it
// @Tags drafts
// @Security BearerAuth
// @Param id path string true "Draft ID"
// @Success 204
// @Failure 404 {object} response.APIResponse
// @Router /drafts/{id} [delete]
func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	draft := h.getDraft(c)
	if draft == nil {
		return
	}

	h.store.Delete(draft.ID)
	response.NoContent(c)
}

// AddItem adds a catalog product to a draft
// @Summary Add Item
// @Description Add a product to the draft, merging with an existing line
// @Tags drafts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body request.AddItemRequest true "Product and quantity"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /drafts/{id}/items [post]
func (h *DraftHandler) AddItem(c *gin.Context) {
	draft := h.getDraft(c)
	if draft == nil {
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.catalogService.Lookup(c.Request.Context(), productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if product == nil {
		response.NotFound(c, "Product not found in catalog")
		return
	}

	draft.AddItem(*product, req.Quantity)
	response.OK(c, "Item added successfully", draft.Snapshot(GetUserRole(c)))
}

// UpdateItem sets a line item's quantity; zero removes the line
// @Summary Update Item
// @Description Set a line item's quantity
// @Tags drafts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param product_id path string true "Product ID"
// @Param request body request.UpdateQuantityRequest true "New quantity"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /drafts/{id}/items/{product_id} [patch]
func (h *DraftHandler) UpdateItem(c *gin.Context) {
	draft := h.getDraft(c)
	if draft == nil {
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	draft.UpdateQuantity(productID, *req.Quantity)
	response.OK(c, "Item updated successfully", draft.Snapshot(GetUserRole(c)))
}

// RemoveItem deletes a line item from a draft
// @Summary Remove Item
// @Description Remove a line item from the draft
// @Tags drafts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Draft ID"
// @Param product_id path string true "Product ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /drafts/{id}/items/{product_id} [delete]
func (h *DraftHandler) RemoveItem(c *gin.Context) {
	draft := h.getDraft(c)
	if draft == nil {
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	draft.RemoveItem(productID)
	response.OK(c, "Item removed successfully", draft.Snapshot(GetUserRole(c)))
}

// SetDiscount replaces the draft's discount tier
// @Summary Set Discount
// @Description Apply one of the supported discount tiers to the draft
// @Tags drafts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body request.SetDiscountRequest true "Discount tier"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /drafts/{id}/discount [put]
func (h *DraftHandler) SetDiscount(c *gin.Context) {
	draft := h.getDraft(c)
	if draft == nil {
		return
	}

	var req request.SetDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := draft.SetDiscountTier(enum.DiscountTier(req.Tier)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount applied successfully", draft.Snapshot(GetUserRole(c)))
}

// Suggest asks the model for product suggestions and merges them into the
// draft. The draft is re-resolved after the remote call returns, so results
// for a draft that was submitted or discarded in the meantime are dropped.
// @Summary Suggest Items
// @Description Generate product suggestions from a natural language request
// @Tags drafts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body request.SuggestRequest true "Natural language request"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /drafts/{id}/suggest [post]
func (h *DraftHandler) Suggest(c *gin.Context) {
	draft := h.getDraft(c)
	if draft == nil {
		return
	}

	var req request.SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	products, err := h.catalogService.Products(c.Request.Context(), "", GetUserRole(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	suggestions, err := h.suggestionService.Suggest(c.Request.Context(), req.Request, products)
	if err != nil {
		response.Error(c, err)
		return
	}

	// The remote call ran unlocked. Re-resolve the draft before merging:
	// a submit or discard that happened in the meantime wins.
	current, ok := h.store.Get(draft.ID)
	if !ok || current.CreatedByID != draft.CreatedByID {
		response.ErrorWithCode(c, 409, "Draft is no longer active")
		return
	}

	batch := make([]builder.BatchItem, 0, len(suggestions))
	for _, s := range suggestions {
		product, err := h.catalogService.Lookup(c.Request.Context(), s.ProductID)
		if err != nil {
			response.Error(c, err)
			return
		}
		if product == nil {
			continue
		}
		batch = append(batch, builder.BatchItem{Product: *product, Quantity: s.Quantity})
	}
	if len(batch) == 0 {
		response.Error(c, apperror.ErrNoSuggestions)
		return
	}

	current.MergeBatch(batch)
	response.OK(c, "Suggestions merged successfully", gin.H{
		"suggested": len(batch),
		"draft":     current.Snapshot(GetUserRole(c)),
	})
}

// Submit turns a draft into a saved quote with a generated document
// @Summary Submit Draft
// @Description Persist the draft as a quote and generate its document
// @Tags drafts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Draft ID"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /drafts/{id}/submit [post]
func (h *DraftHandler) Submit(c *gin.Context) {
	draft := h.getDraft(c)
	if draft == nil {
		return
	}

	userID := GetUserID(c)
	role := GetUserRole(c)

	// Totals carry cost figures only when the submitter can see them, so
	// the saved quote never records more than its creator was shown.
	snapshot := draft.Snapshot(role)

	quote, err := h.quoteService.Submit(c.Request.Context(), &service.SubmitQuoteInput{
		CreatedByID:  *userID,
		CustomerID:   snapshot.CustomerID,
		ProjectName:  snapshot.ProjectName,
		Items:        snapshot.Items,
		DiscountTier: snapshot.DiscountTier,
		Totals:       snapshot.Totals,
	})

	var docErr *service.DocumentError
	if errors.As(err, &docErr) {
		// The quote is saved; only the document is missing. The draft is
		// finished either way.
		h.store.Delete(draft.ID)
		response.ErrorWithData(c, apperror.NewAppError(502, "Quote saved but document generation failed"), gin.H{
			"quote": quote,
		})
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	h.store.Delete(draft.ID)
	response.Created(c, "Quote submitted successfully", gin.H{"quote": quote})
}
