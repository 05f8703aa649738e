package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCustomerRequired = errors.New("customer id is required")
	ErrItemsRequired    = errors.New("order must contain at least one item")
	ErrProductRequired  = errors.New("product id is required")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrInvalidStatus    = errors.New("order status is invalid")
	ErrNegativePrice    = errors.New("unit price must not be negative")

	ErrCompleteNotPending = errors.New("only pending orders can be completed")
	ErrCancelNotPending   = errors.New("only pending orders can be cancelled")
)

// Line is one requested product quantity before pricing.
type Line struct {
	ProductID uuid.UUID
	Quantity  int
}

// OrderItem is a priced line of an order. UnitPrice is fixed when the order is placed.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal is quantity times unit price.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order models a customer purchase tracked through Pending, Completed and Cancelled.
type Order struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	Status      Status
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
	CompletedAt *time.Time
	Items       []OrderItem
}

// ValidatePlacement checks a placement request before any stock is touched.
func ValidatePlacement(customerID uuid.UUID, lines []Line) error {
	if customerID == uuid.Nil {
		return ErrCustomerRequired
	}
	if len(lines) == 0 {
		return ErrItemsRequired
	}
	for _, line := range lines {
		if line.ProductID == uuid.Nil {
			return ErrProductRequired
		}
		if line.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

// NewOrder builds a pending order from priced items and computes its total.
func NewOrder(id, customerID uuid.UUID, items []OrderItem, createdAt time.Time) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, ErrCustomerRequired
	}
	if len(items) == 0 {
		return nil, ErrItemsRequired
	}
	order := &Order{
		ID:          id,
		CustomerID:  customerID,
		Status:      StatusPending,
		CreatedAt:   createdAt.UTC(),
		Items:       make([]OrderItem, 0, len(items)),
		TotalAmount: decimal.Zero,
	}
	for _, item := range items {
		if item.ProductID == uuid.Nil {
			return nil, ErrProductRequired
		}
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if item.UnitPrice.IsNegative() {
			return nil, ErrNegativePrice
		}
		item.OrderID = id
		order.Items = append(order.Items, item)
		order.TotalAmount = order.TotalAmount.Add(item.Subtotal())
	}
	return order, nil
}

// Complete moves a pending order to Completed and stamps the completion time.
func (o *Order) Complete(at time.Time) error {
	if o.Status != StatusPending {
		return ErrCompleteNotPending
	}
	completedAt := at.UTC()
	o.Status = StatusCompleted
	o.CompletedAt = &completedAt
	return nil
}

// Cancel moves a pending order to Cancelled. Stock restoration is the caller's job.
func (o *Order) Cancel() error {
	if o.Status != StatusPending {
		return ErrCancelNotPending
	}
	o.Status = StatusCancelled
	return nil
}

// ComputedTotal sums the item subtotals.
func (o *Order) ComputedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Clone returns a deep copy.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	if o.CompletedAt != nil {
		completedAt := *o.CompletedAt
		clone.CompletedAt = &completedAt
	}
	clone.Items = append([]OrderItem(nil), o.Items...)
	return &clone
}
