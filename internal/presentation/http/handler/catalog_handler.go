package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/solines/hotelquote-api/internal/application/service"
	"github.com/solines/hotelquote-api/internal/presentation/http/dto/response"
)

// CatalogHandler serves the cached product and customer catalogs
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListProducts handles listing catalog products
// @Summary List Products
// @Description List catalog products, optionally filtered by a search query
// @Tags catalog
// @Security BearerAuth
// @Produce json
// @Param q query string false "Search query over name, SKU and tags"
// @Success 200 {object} response.APIResponse
// @Router /catalog/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	query := c.Query("q")
	role := GetUserRole(c)

	products, err := h.catalogService.Products(c.Request.Context(), query, role)
	if err != nil {
		// A failed fetch still returns an empty usable list
		response.PartialSuccess(c, "Catalog unavailable", gin.H{"products": products}, err)
		return
	}

	response.OK(c, "Products retrieved successfully", gin.H{"products": products})
}

// ListCustomers handles listing catalog customers
// @Summary List Customers
// @Description List the customers quotes can be created for
// @Tags catalog
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /catalog/customers [get]
func (h *CatalogHandler) ListCustomers(c *gin.Context) {
	customers, err := h.catalogService.Customers(c.Request.Context())
	if err != nil {
		response.PartialSuccess(c, "Catalog unavailable", gin.H{"customers": customers}, err)
		return
	}

	response.OK(c, "Customers retrieved successfully", gin.H{"customers": customers})
}

// RefreshCatalog drops the catalog cache so the next read re-fetches
// @Summary Refresh Catalog
// @Description Invalidate the in-memory catalog cache
// @Tags catalog
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /catalog/refresh [post]
func (h *CatalogHandler) RefreshCatalog(c *gin.Context) {
	h.catalogService.Refresh()
	response.OK(c, "Catalog cache invalidated", nil)
}
