package memory

import (
	"context"

	"github.com/google/uuid"

	catalogmemory "github.com/Apurer/retail-inventory-api/internal/domains/catalog/adapters/memory"
	catalogports "github.com/Apurer/retail-inventory-api/internal/domains/catalog/ports"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/ports"
	"github.com/Apurer/retail-inventory-api/internal/platform/memstore"
)

var (
	_ ports.UnitOfWork  = (*UnitOfWork)(nil)
	_ ports.OrderWriter = (*orderWriter)(nil)
)

// UnitOfWork serializes units of work over the shared memstore. A failed unit leaves no trace.
type UnitOfWork struct {
	store *memstore.Store
}

func NewUnitOfWork(store *memstore.Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx ports.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return u.store.Update(func(w *memstore.Writer) error {
		return fn(ctx, &txScope{
			customers: catalogmemory.NewCustomerLookup(&w.Reader),
			stock:     catalogmemory.NewStockLedger(w),
			orders:    &orderWriter{w: w},
		})
	})
}

type txScope struct {
	customers catalogports.CustomerLookup
	stock     catalogports.StockLedger
	orders    ports.OrderWriter
}

func (t *txScope) Customers() catalogports.CustomerLookup { return t.customers }
func (t *txScope) Stock() catalogports.StockLedger        { return t.stock }
func (t *txScope) Orders() ports.OrderWriter              { return t.orders }

type orderWriter struct {
	w *memstore.Writer
}

func (o *orderWriter) Add(_ context.Context, order *domain.Order) error {
	if _, exists := o.w.Order(order.ID); exists {
		return ports.ErrOrderExists
	}
	o.w.PutOrder(order)
	return nil
}

func (o *orderWriter) GetForUpdate(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	order, ok := o.w.Order(id)
	if !ok {
		return nil, ports.ErrOrderNotFound
	}
	return order, nil
}

func (o *orderWriter) UpdateStatus(_ context.Context, order *domain.Order) error {
	stored, ok := o.w.Order(order.ID)
	if !ok {
		return ports.ErrOrderNotFound
	}
	stored.Status = order.Status
	stored.CompletedAt = order.Clone().CompletedAt
	o.w.PutOrder(stored)
	return nil
}
