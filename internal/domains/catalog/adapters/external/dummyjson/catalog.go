package dummyjson

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	dummyclient "github.com/Apurer/retail-inventory-api/internal/clients/http/dummyjson"
	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/ports"
)

var _ ports.ExternalCatalog = (*Catalog)(nil)

// Catalog adapts the DummyJSON client to the external catalog port.
type Catalog struct {
	client *dummyclient.Client
}

func NewCatalog(client *dummyclient.Client) *Catalog {
	return &Catalog{client: client}
}

func (c *Catalog) FetchProducts(ctx context.Context) ([]ports.ExternalProduct, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("dummyjson catalog not configured")
	}
	rows, err := c.client.AllProducts(ctx)
	if err != nil {
		return nil, err
	}
	products := make([]ports.ExternalProduct, 0, len(rows))
	for _, row := range rows {
		products = append(products, ToExternalProduct(row))
	}
	return products, nil
}

func (c *Catalog) FetchCustomers(ctx context.Context) ([]ports.ExternalCustomer, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("dummyjson catalog not configured")
	}
	rows, err := c.client.AllUsers(ctx)
	if err != nil {
		return nil, err
	}
	customers := make([]ports.ExternalCustomer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, ToExternalCustomer(row))
	}
	return customers, nil
}

// ToExternalProduct rounds the float price to cents and clamps negative stock to zero.
func ToExternalProduct(row dummyclient.Product) ports.ExternalProduct {
	return ports.ExternalProduct{
		ExternalID: row.ID,
		Title:      strings.TrimSpace(row.Title),
		Price:      decimal.NewFromFloat(row.Price).Round(2),
		Stock:      max(row.Stock, 0),
	}
}

func ToExternalCustomer(row dummyclient.User) ports.ExternalCustomer {
	return ports.ExternalCustomer{
		ExternalID: row.ID,
		FirstName:  strings.TrimSpace(row.FirstName),
		LastName:   strings.TrimSpace(row.LastName),
		Email:      strings.TrimSpace(row.Email),
	}
}
