package types

import "github.com/google/uuid"

// CreateOrderItemInput requests quantity units of one product.
type CreateOrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderInput places an order for a customer.
type CreateOrderInput struct {
	CustomerID uuid.UUID
	Items      []CreateOrderItemInput
}

// ListOrdersInput carries raw paging, filter and sort parameters.
type ListOrdersInput struct {
	PageNumber    int
	PageSize      int
	Status        string
	SortBy        string
	SortDirection string
}
