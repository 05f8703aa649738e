package mapper

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Apurer/retail-inventory-api/internal/domains/orders/application/types"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/domain"
)

// CreateOrderItem is one requested line of an inbound order.
type CreateOrderItem struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// CreateOrder is the inbound order placement payload.
type CreateOrder struct {
	CustomerID uuid.UUID         `json:"customerId"`
	Items      []CreateOrderItem `json:"items"`
}

// CreatedOrder answers a successful placement.
type CreatedOrder struct {
	OrderID uuid.UUID `json:"orderId"`
}

// OrderItem is the HTTP representation of a priced order line.
type OrderItem struct {
	ProductID uuid.UUID   `json:"productId"`
	Quantity  int         `json:"quantity"`
	UnitPrice json.Number `json:"unitPrice"`
	Subtotal  json.Number `json:"subtotal"`
}

// Order is the HTTP representation of an order with its items.
type Order struct {
	ID          uuid.UUID   `json:"id"`
	CustomerID  uuid.UUID   `json:"customerId"`
	Status      string      `json:"status"`
	TotalAmount json.Number `json:"totalAmount"`
	CreatedAt   time.Time   `json:"createdAt"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
	Items       []OrderItem `json:"items"`
}

// Summary is the HTTP representation of the order aggregate.
type Summary struct {
	TotalOrders     int64       `json:"totalOrders"`
	PendingOrders   int64       `json:"pendingOrders"`
	CompletedOrders int64       `json:"completedOrders"`
	CancelledOrders int64       `json:"cancelledOrders"`
	TotalRevenue    json.Number `json:"totalRevenue"`
	PendingRevenue  json.Number `json:"pendingRevenue"`
}

// GenerateOrders is the bulk generation request.
type GenerateOrders struct {
	Count int `json:"count"`
}

// GenerationResult reports a bulk generation run. ImportedCount echoes the requested count.
type GenerationResult struct {
	ImportedCount int `json:"importedCount"`
	Created       int `json:"created"`
	Completed     int `json:"completed"`
	Cancelled     int `json:"cancelled"`
	Pending       int `json:"pending"`
	Failed        int `json:"failed"`
}

// Money renders an amount with exactly two decimals as a JSON number.
func Money(amount decimal.Decimal) json.Number {
	return json.Number(amount.StringFixed(2))
}

// ToCreateInput maps the placement payload onto the application input.
func ToCreateInput(payload CreateOrder) types.CreateOrderInput {
	items := make([]types.CreateOrderItemInput, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, types.CreateOrderItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return types.CreateOrderInput{CustomerID: payload.CustomerID, Items: items}
}

// FromDomainOrder maps an order aggregate to its HTTP representation.
func FromDomainOrder(order *domain.Order) Order {
	if order == nil {
		return Order{}
	}
	items := make([]OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: Money(item.UnitPrice),
			Subtotal:  Money(item.Subtotal()),
		})
	}
	return Order{
		ID:          order.ID,
		CustomerID:  order.CustomerID,
		Status:      order.Status.String(),
		TotalAmount: Money(order.TotalAmount),
		CreatedAt:   order.CreatedAt.UTC(),
		CompletedAt: order.CompletedAt,
		Items:       items,
	}
}

// FromDomainSummary maps the aggregate summary.
func FromDomainSummary(summary domain.Summary) Summary {
	return Summary{
		TotalOrders:     summary.TotalOrders,
		PendingOrders:   summary.PendingOrders,
		CompletedOrders: summary.CompletedOrders,
		CancelledOrders: summary.CancelledOrders,
		TotalRevenue:    Money(summary.TotalRevenue),
		PendingRevenue:  Money(summary.PendingRevenue),
	}
}

// FromGenerationSummary maps a bulk generation tally.
func FromGenerationSummary(requested int, summary types.GenerationSummary) GenerationResult {
	return GenerationResult{
		ImportedCount: requested,
		Created:       summary.Created,
		Completed:     summary.Completed,
		Cancelled:     summary.Cancelled,
		Pending:       summary.Pending,
		Failed:        summary.Failed,
	}
}
