package application

import (
	"errors"
	"fmt"

	catalogdomain "github.com/Apurer/retail-inventory-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/retail-inventory-api/internal/domains/catalog/ports"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrNotFound signals a referenced customer, product or order does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrInsufficientStock signals a product cannot cover the requested quantity.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidState signals a status transition from a terminal state.
	ErrInvalidState = errors.New("invalid order state")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrCustomerRequired),
		errors.Is(err, domain.ErrItemsRequired),
		errors.Is(err, domain.ErrProductRequired),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, catalogdomain.ErrInvalidQuantity):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, ports.ErrOrderNotFound),
		errors.Is(err, catalogports.ErrCustomerNotFound),
		errors.Is(err, catalogports.ErrProductNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, catalogdomain.ErrInsufficientStock):
		return fmt.Errorf("%w: %w", ErrInsufficientStock, err)
	case errors.Is(err, domain.ErrCompleteNotPending),
		errors.Is(err, domain.ErrCancelNotPending):
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	return err
}
