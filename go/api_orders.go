package retailserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/Apurer/retail-inventory-api/internal/domains/orders/adapters/http/mapper"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/application/types"
	ordersports "github.com/Apurer/retail-inventory-api/internal/domains/orders/ports"
)

// OrdersAPI wires HTTP transport to the order engine and the bulk generation orchestrator.
type OrdersAPI struct {
	service    ordersports.Service
	generation ordersports.GenerationOrchestrator
}

// NewOrdersAPI creates the orders handlers. A nil generation orchestrator runs generation on the service directly.
func NewOrdersAPI(service ordersports.Service, generation ordersports.GenerationOrchestrator) OrdersAPI {
	return OrdersAPI{service: service, generation: generation}
}

// Post /api/orders
// Place an order and reserve its stock
func (api *OrdersAPI) CreateOrder(c *gin.Context) {
	var payload orderhttpmapper.CreateOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	id, err := api.service.CreateOrder(c.Request.Context(), orderhttpmapper.ToCreateInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Location", "/api/orders/"+id.String())
	c.JSON(http.StatusCreated, orderhttpmapper.CreatedOrder{OrderID: id})
}

// Get /api/orders
// List orders, newest first unless sortDirection says otherwise
func (api *OrdersAPI) ListOrders(c *gin.Context) {
	params, err := parseListParams(c, "desc")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := api.service.GetPaged(c.Request.Context(), types.ListOrdersInput{
		PageNumber:    params.PageNumber,
		PageSize:      params.PageSize,
		Status:        c.Query("status"),
		SortBy:        params.SortBy,
		SortDirection: params.SortDirection,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPage(result, orderhttpmapper.FromDomainOrder))
}

// Get /api/orders/summary
// Order counts and revenue by status
func (api *OrdersAPI) GetSummary(c *gin.Context) {
	summary, err := api.service.GetSummary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainSummary(summary))
}

// Get /api/orders/:id
// Find order by id
func (api *OrdersAPI) GetOrder(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Post /api/orders/:id/complete
// Complete a pending order
func (api *OrdersAPI) CompleteOrder(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := api.service.CompleteOrder(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /api/orders/:id/cancel
// Cancel a pending order and restore its stock
func (api *OrdersAPI) CancelOrder(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := api.service.CancelOrder(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /api/orders/generate
// Generate random orders for load and demo data
func (api *OrdersAPI) GenerateOrders(c *gin.Context) {
	var payload orderhttpmapper.GenerateOrders
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	if payload.Count < 1 || payload.Count > types.MaxGenerationCount {
		respondBadRequest(c, fmt.Errorf("count must be between 1 and %d", types.MaxGenerationCount))
		return
	}
	summary, err := api.generate(c.Request.Context(), payload.Count)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromGenerationSummary(payload.Count, summary))
}

func (api *OrdersAPI) generate(ctx context.Context, count int) (types.GenerationSummary, error) {
	if api.generation != nil {
		return api.generation.GenerateOrders(ctx, count)
	}
	report, err := api.service.GenerateRandomOrders(ctx, count)
	if err != nil {
		return types.GenerationSummary{}, err
	}
	return report.Summary(), nil
}
