package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidProductID = errors.New("product id is required")
	ErrEmptyProductName = errors.New("product name is required")
	ErrEmptySKU         = errors.New("product sku is required")
	ErrNegativePrice    = errors.New("product price must not be negative")
	ErrNegativeStock    = errors.New("product stock must not be negative")
	ErrInvalidQuantity  = errors.New("stock quantity must be greater than zero")

	// ErrInsufficientStock is matched by every InsufficientStockError.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError reports a reservation that exceeds the available stock of a product.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("product %q (%s) has %d in stock, %d requested", e.ProductName, e.ProductID, e.Available, e.Requested)
}

// Is lets errors.Is match ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// Product is a sellable catalog entry with its available stock.
type Product struct {
	ID            uuid.UUID
	ExternalID    int
	Name          string
	SKU           string
	Price         decimal.Decimal
	StockQuantity int
}

// NewProduct validates and constructs a product. Prices are rounded to cents.
func NewProduct(id uuid.UUID, name, sku string, price decimal.Decimal, stock int) (*Product, error) {
	product := &Product{
		ID:            id,
		Name:          strings.TrimSpace(name),
		SKU:           strings.TrimSpace(sku),
		Price:         price.Round(2),
		StockQuantity: stock,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Validate enforces product invariants.
func (p *Product) Validate() error {
	if p.ID == uuid.Nil {
		return ErrInvalidProductID
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyProductName
	}
	if strings.TrimSpace(p.SKU) == "" {
		return ErrEmptySKU
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.StockQuantity < 0 {
		return ErrNegativeStock
	}
	return nil
}

// CanReserve checks that quantity units can be taken from stock.
func (p *Product) CanReserve(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if p.StockQuantity < quantity {
		return &InsufficientStockError{
			ProductID:   p.ID,
			ProductName: p.Name,
			Requested:   quantity,
			Available:   p.StockQuantity,
		}
	}
	return nil
}

// Reserve deducts quantity from stock.
func (p *Product) Reserve(quantity int) error {
	if err := p.CanReserve(quantity); err != nil {
		return err
	}
	p.StockQuantity -= quantity
	return nil
}

// Release returns quantity to stock.
func (p *Product) Release(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	p.StockQuantity += quantity
	return nil
}

// ImportedSKU is the SKU assigned to products pulled from the external catalog.
func ImportedSKU(externalID int) string {
	return fmt.Sprintf("DUMMY-%d", externalID)
}
