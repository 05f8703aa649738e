package retailserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cataloghttpmapper "github.com/Apurer/retail-inventory-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/retail-inventory-api/internal/domains/catalog/ports"
)

// CatalogAPI serves products and customers.
type CatalogAPI struct {
	service catalogports.Service
}

func NewCatalogAPI(service catalogports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

// Get /api/customers
// List customers
func (api *CatalogAPI) ListCustomers(c *gin.Context) {
	params, err := parseListParams(c, "asc")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := api.service.ListCustomers(c.Request.Context(), catalogports.ListInput(params))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPage(result, cataloghttpmapper.FromDomainCustomer))
}

// Get /api/customers/:id
// Find customer by id
func (api *CatalogAPI) GetCustomer(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	customer, err := api.service.GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainCustomer(customer))
}

// Post /api/customers/import
// Import customers from the external catalog
func (api *CatalogAPI) ImportCustomers(c *gin.Context) {
	count, err := api.service.ImportCustomers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.ImportResult{ImportedCount: count})
}

// Get /api/products
// List products
func (api *CatalogAPI) ListProducts(c *gin.Context) {
	params, err := parseListParams(c, "asc")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := api.service.ListProducts(c.Request.Context(), catalogports.ListInput(params))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPage(result, cataloghttpmapper.FromDomainProduct))
}

// Get /api/products/:id
// Find product by id
func (api *CatalogAPI) GetProduct(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProduct(product))
}

// Post /api/products/import
// Import products from the external catalog
func (api *CatalogAPI) ImportProducts(c *gin.Context) {
	count, err := api.service.ImportProducts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.ImportResult{ImportedCount: count})
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondBadRequest(c, fmt.Errorf("%s must be a uuid", name))
		return uuid.Nil, false
	}
	return id, true
}
