package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/ports"
)

var (
	// ErrInvalidInput signals the request violated a catalog invariant.
	ErrInvalidInput = errors.New("invalid catalog input")
	// ErrNotFound signals the product or customer does not exist.
	ErrNotFound = errors.New("catalog entry not found")
	// ErrImportUnavailable signals no external catalog is configured.
	ErrImportUnavailable = errors.New("external catalog not configured")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrInvalidProductID),
		errors.Is(err, domain.ErrEmptyProductName),
		errors.Is(err, domain.ErrEmptySKU),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrNegativeStock),
		errors.Is(err, domain.ErrInvalidCustomerID),
		errors.Is(err, domain.ErrEmptyCustomerName),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, ports.ErrDuplicate):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, ports.ErrProductNotFound),
		errors.Is(err, ports.ErrCustomerNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
