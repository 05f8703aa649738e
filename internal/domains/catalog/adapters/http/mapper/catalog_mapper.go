package mapper

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/domain"
)

// Product is the HTTP representation of a catalog product.
type Product struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	SKU           string      `json:"sku"`
	StockQuantity int         `json:"stockQuantity"`
	Price         json.Number `json:"price"`
}

// Customer is the HTTP representation of a customer.
type Customer struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
}

// ImportResult reports how many rows an import inserted.
type ImportResult struct {
	ImportedCount int `json:"importedCount"`
}

func FromDomainProduct(product *domain.Product) Product {
	if product == nil {
		return Product{}
	}
	return Product{
		ID:            product.ID,
		Name:          product.Name,
		SKU:           product.SKU,
		StockQuantity: product.StockQuantity,
		Price:         json.Number(product.Price.StringFixed(2)),
	}
}

func FromDomainCustomer(customer *domain.Customer) Customer {
	if customer == nil {
		return Customer{}
	}
	return Customer{
		ID:        customer.ID,
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
		Email:     customer.Email,
	}
}
