package application

import (
	"context"
	"fmt"

	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/domain"
)

// ImportProducts copies external products whose external id is not yet present.
// It returns the number of inserted products.
func (s *Service) ImportProducts(ctx context.Context) (int, error) {
	if s.external == nil {
		return 0, ErrImportUnavailable
	}
	rows, err := s.external.FetchProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch external products: %w", err)
	}
	externalIDs := make([]int, 0, len(rows))
	for _, row := range rows {
		externalIDs = append(externalIDs, row.ExternalID)
	}
	existing, err := s.products.ExistingExternalIDs(ctx, externalIDs)
	if err != nil {
		return 0, mapError(err)
	}
	products := make([]*domain.Product, 0, len(rows))
	for _, row := range rows {
		if _, ok := existing[row.ExternalID]; ok {
			continue
		}
		product, err := domain.NewProduct(s.newID(), row.Title, domain.ImportedSKU(row.ExternalID), row.Price, row.Stock)
		if err != nil {
			return 0, mapError(fmt.Errorf("external product %d: %w", row.ExternalID, err))
		}
		product.ExternalID = row.ExternalID
		existing[row.ExternalID] = struct{}{}
		products = append(products, product)
	}
	if len(products) == 0 {
		return 0, nil
	}
	if err := s.products.Save(ctx, products...); err != nil {
		return 0, mapError(err)
	}
	return len(products), nil
}

// ImportCustomers copies external users whose external id is not yet present.
// It returns the number of inserted customers.
func (s *Service) ImportCustomers(ctx context.Context) (int, error) {
	if s.external == nil {
		return 0, ErrImportUnavailable
	}
	rows, err := s.external.FetchCustomers(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch external customers: %w", err)
	}
	externalIDs := make([]int, 0, len(rows))
	for _, row := range rows {
		externalIDs = append(externalIDs, row.ExternalID)
	}
	existing, err := s.customers.ExistingExternalIDs(ctx, externalIDs)
	if err != nil {
		return 0, mapError(err)
	}
	customers := make([]*domain.Customer, 0, len(rows))
	for _, row := range rows {
		if _, ok := existing[row.ExternalID]; ok {
			continue
		}
		customer, err := domain.NewCustomer(s.newID(), row.FirstName, row.LastName, row.Email)
		if err != nil {
			return 0, mapError(fmt.Errorf("external customer %d: %w", row.ExternalID, err))
		}
		customer.ExternalID = row.ExternalID
		existing[row.ExternalID] = struct{}{}
		customers = append(customers, customer)
	}
	if len(customers) == 0 {
		return 0, nil
	}
	if err := s.customers.Save(ctx, customers...); err != nil {
		return 0, mapError(err)
	}
	return len(customers), nil
}
