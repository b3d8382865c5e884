package request

// UpdateDraftRequest updates draft metadata; absent fields are untouched
type UpdateDraftRequest struct {
	CustomerID  *string `json:"customer_id"`
	ProjectName *string `json:"project_name"`
}

// AddItemRequest adds a product to a draft
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateQuantityRequest sets a line item's quantity
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// SetDiscountRequest replaces the draft's discount tier
type SetDiscountRequest struct {
	Tier string `json:"tier" binding:"required"`
}

// SuggestRequest asks for generated item suggestions
type SuggestRequest struct {
	Request string `json:"request" binding:"required"`
}
