package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/ports"
	"github.com/Apurer/retail-inventory-api/internal/platform/memstore"
)

var (
	_ ports.StockLedger    = (*StockLedger)(nil)
	_ ports.CustomerLookup = (*CustomerLookup)(nil)
)

// StockLedger mutates product stock through a memstore writer. The writer's exclusive lock
// stands in for row locks.
type StockLedger struct {
	w *memstore.Writer
}

func NewStockLedger(w *memstore.Writer) *StockLedger {
	return &StockLedger{w: w}
}

func (l *StockLedger) GetForUpdate(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	product, ok := l.w.Product(id)
	if !ok {
		return nil, ports.ErrProductNotFound
	}
	return product, nil
}

func (l *StockLedger) Deduct(_ context.Context, id uuid.UUID, quantity int) error {
	product, ok := l.w.Product(id)
	if !ok {
		return ports.ErrProductNotFound
	}
	if err := product.Reserve(quantity); err != nil {
		return err
	}
	l.w.PutProduct(product)
	return nil
}

func (l *StockLedger) Restore(_ context.Context, id uuid.UUID, quantity int) error {
	product, ok := l.w.Product(id)
	if !ok {
		return ports.ErrProductNotFound
	}
	if err := product.Release(quantity); err != nil {
		return err
	}
	l.w.PutProduct(product)
	return nil
}

// CustomerLookup reads customers through a memstore reader.
type CustomerLookup struct {
	r *memstore.Reader
}

func NewCustomerLookup(r *memstore.Reader) *CustomerLookup {
	return &CustomerLookup{r: r}
}

func (l *CustomerLookup) GetCustomer(_ context.Context, id uuid.UUID) (*domain.Customer, error) {
	customer, ok := l.r.Customer(id)
	if !ok {
		return nil, ports.ErrCustomerNotFound
	}
	return customer, nil
}

func compareStrings(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func toSet(values []int) map[int]struct{} {
	set := make(map[int]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
