package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// ExternalProduct is a product row offered by the external catalog.
type ExternalProduct struct {
	ExternalID int
	Title      string
	Price      decimal.Decimal
	Stock      int
}

// ExternalCustomer is a user row offered by the external catalog.
type ExternalCustomer struct {
	ExternalID int
	FirstName  string
	LastName   string
	Email      string
}

// ExternalCatalog fetches the full product and user listings of a remote catalog.
type ExternalCatalog interface {
	FetchProducts(ctx context.Context) ([]ExternalProduct, error)
	FetchCustomers(ctx context.Context) ([]ExternalCustomer, error)
}
