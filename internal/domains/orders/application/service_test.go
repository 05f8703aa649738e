package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/Apurer/retail-inventory-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/Apurer/retail-inventory-api/internal/domains/catalog/domain"
	ordersmemory "github.com/Apurer/retail-inventory-api/internal/domains/orders/adapters/memory"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/application/types"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/ports"
	"github.com/Apurer/retail-inventory-api/internal/platform/memstore"
	"github.com/Apurer/retail-inventory-api/internal/shared/paging"
)

type fixture struct {
	store     *memstore.Store
	products  *catalogmemory.ProductRepository
	customers *catalogmemory.CustomerRepository
	orders    *ordersmemory.Repository
	svc       *Service
	now       time.Time
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	store := memstore.New()
	f := &fixture{
		store:     store,
		products:  catalogmemory.NewProductRepository(store),
		customers: catalogmemory.NewCustomerRepository(store),
		orders:    ordersmemory.NewRepository(store),
		now:       time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time {
		f.now = f.now.Add(time.Minute)
		return f.now
	}
	opts = append([]Option{WithClock(clock)}, opts...)
	f.svc = NewService(f.orders, ordersmemory.NewUnitOfWork(store), f.customers, f.products, opts...)
	return f
}

func (f *fixture) addCustomer(t *testing.T) *catalogdomain.Customer {
	t.Helper()
	id := uuid.New()
	customer, err := catalogdomain.NewCustomer(id, "Test", "User", id.String()+"@test.com")
	require.NoError(t, err)
	require.NoError(t, f.customers.Save(context.Background(), customer))
	return customer
}

func (f *fixture) addProduct(t *testing.T, name string, price string, stock int) *catalogdomain.Product {
	t.Helper()
	product, err := catalogdomain.NewProduct(uuid.New(), name, "SKU-"+uuid.NewString()[:8], decimal.RequireFromString(price), stock)
	require.NoError(t, err)
	require.NoError(t, f.products.Save(context.Background(), product))
	return product
}

func (f *fixture) stock(t *testing.T, id uuid.UUID) int {
	t.Helper()
	product, err := f.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	return product.StockQuantity
}

func (f *fixture) orderCount(t *testing.T) int64 {
	t.Helper()
	count, err := f.orders.Count(context.Background(), nil)
	require.NoError(t, err)
	return count
}

func (f *fixture) place(t *testing.T, customer uuid.UUID, items ...types.CreateOrderItemInput) uuid.UUID {
	t.Helper()
	id, err := f.svc.CreateOrder(context.Background(), types.CreateOrderInput{CustomerID: customer, Items: items})
	require.NoError(t, err)
	return id
}

func item(product uuid.UUID, quantity int) types.CreateOrderItemInput {
	return types.CreateOrderItemInput{ProductID: product, Quantity: quantity}
}

func TestCreateOrder_DeductsStockAndSnapshotsPrice(t *testing.T) {
	f := newFixture(t)
	customer := f.addCustomer(t)
	product := f.addProduct(t, "Phone", "199.99", 5)

	id := f.place(t, customer.ID, item(product.ID, 2))

	assert.Equal(t, 3, f.stock(t, product.ID))
	order, err := f.svc.GetOrder(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, customer.ID, order.CustomerID)
	assert.Nil(t, order.CompletedAt)
	assert.False(t, order.CreatedAt.IsZero())
	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].UnitPrice.Equal(product.Price))
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("399.98")))
	assert.True(t, order.TotalAmount.Equal(order.ComputedTotal()))
}

func TestCreateOrder_MultipleItemsTotal(t *testing.T) {
	f := newFixture(t)
	customer := f.addCustomer(t)
	phone := f.addProduct(t, "Phone", "100.10", 10)
	cable := f.addProduct(t, "Cable", "0.30", 10)

	id := f.place(t, customer.ID, item(phone.ID, 3), item(cable.ID, 7))

	order, err := f.svc.GetOrder(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, phone.ID, order.Items[0].ProductID)
	assert.Equal(t, cable.ID, order.Items[1].ProductID)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("302.40")), order.TotalAmount.String())
	assert.Equal(t, 7, f.stock(t, phone.ID))
	assert.Equal(t, 3, f.stock(t, cable.ID))
}

func TestCreateOrder_ValidationRunsFirst(t *testing.T) {
	f := newFixture(t)
	customer := f.addCustomer(t)
	product := f.addProduct(t, "Phone", "100", 5)

	cases := map[string]types.CreateOrderInput{
		"missing customer": {Items: []types.CreateOrderItemInput{item(product.ID, 1)}},
		"no items":         {CustomerID: customer.ID},
		"zero quantity":    {CustomerID: customer.ID, Items: []types.CreateOrderItemInput{item(product.ID, 1), item(product.ID, 0)}},
		"negative":         {CustomerID: customer.ID, Items: []types.CreateOrderItemInput{item(product.ID, -2)}},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.CreateOrder(context.Background(), input)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, 5, f.stock(t, product.ID))
			assert.Zero(t, f.orderCount(t))
		})
	}
}

func TestCreateOrder_NotFound(t *testing.T) {
	f := newFixture(t)
	customer := f.addCustomer(t)
	product := f.addProduct(t, "Phone", "100", 5)

	_, err := f.svc.CreateOrder(context.Background(), types.CreateOrderInput{
		CustomerID: uuid.New(),
		Items:      []types.CreateOrderItemInput{item(product.ID, 1)},
	})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.CreateOrder(context.Background(), types.CreateOrderInput{
		CustomerID: customer.ID,
		Items:      []types.CreateOrderItemInput{item(product.ID, 2), item(uuid.New(), 1)},
	})
	require.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 5, f.stock(t, product.ID))
	assert.Zero(t, f.orderCount(t))
}

func TestCreateOrder_InsufficientStockLeavesNoTrace(t *testing.T) {
	f := newFixture(t)
	customer := f.addCustomer(t)
	first := f.addProduct(t, "Tablet", "50", 10)
	product := f.addProduct(t, "Phone", "100", 5)

	_, err := f.svc.CreateOrder(context.Background(), types.CreateOrderInput{
		CustomerID: customer.ID,
		Items:      []types.CreateOrderItemInput{item(first.ID, 4), item(product.ID, 10)},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	require.ErrorIs(t, err, catalogdomain.ErrInsufficientStock)
	var stockErr *catalogdomain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, product.ID, stockErr.ProductID)
	assert.Contains(t, err.Error(), "Phone")

	assert.Equal(t, 10, f.stock(t, first.ID))
	assert.Equal(t, 5, f.stock(t, product.ID))
	assert.Zero(t, f.orderCount(t))
}

func TestCreateOrder_RepeatedProductIsCheckedCumulatively(t *testing.T) {
	f := newFixture(t)
	customer := f.addCustomer(t)
	product := f.addProduct(t, "Phone", "100", 5)

	_, err := f.svc.CreateOrder(context.Background(), types.CreateOrderInput{
		CustomerID: customer.ID,
		Items:      []types.CreateOrderItemInput{item(product.ID, 3), item(product.ID, 3)},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 5, f.stock(t, product.ID))

	f.place(t, customer.ID, item(product.ID, 3), item(product.ID, 2))
	assert.Equal(t, 0, f.stock(t, product.ID))
}

func TestCreateOrder_PriceChangeDoesNotRewriteHistory(t *testing.T) {
	f := newFixture(t)
	customer := f.addCustomer(t)
	product := f.addProduct(t, "Phone", "100", 5)

	id := f.place(t, customer.ID, item(product.ID, 1))

	stored, err := f.products.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	stored.Price = decimal.RequireFromString("250")
	require.NoError(t, f.products.Save(context.Background(), stored))

	order, err := f.svc.GetOrder(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(100)))
}

func TestCreateOrder_ConcurrentOrdersNeverOverdraw(t *testing.T) {
	f := newFixture(t)
	customer := f.addCustomer(t)
	product := f.addProduct(t, "Phone", "100", 10)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CreateOrder(context.Background(), types.CreateOrderInput{
				CustomerID: customer.ID,
				Items:      []types.CreateOrderItemInput{item(product.ID, 1)},
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, ErrInsufficientStock)
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	assert.Equal(t, 0, f.stock(t, product.ID))
	assert.Equal(t, int64(10), f.orderCount(t))
}

func TestCompleteOrder(t *testing.T) {
	f := newFixture(t)
	customer := f.addCustomer(t)
	product := f.addProduct(t, "Phone", "100", 5)
	id := f.place(t, customer.ID, item(product.ID, 2))

	require.NoError(t, f.svc.CompleteOrder(context.Background(), id))

	order, err := f.svc.GetOrder(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, order.Status)
	require.NotNil(t, order.CompletedAt)
	assert.True(t, order.CompletedAt.After(order.CreatedAt))
	assert.Equal(t, 3, f.stock(t, product.ID))

	err = f.svc.CompleteOrder(context.Background(), id)
	require.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, err, domain.ErrCompleteNotPending)

	require.ErrorIs(t, f.svc.CompleteOrder(context.Background(), uuid.New()), ErrNotFound)
}

func TestCancelOrder_RestoresStock(t *testing.T) {
	f := newFixture(t)
	customer := f.addCustomer(t)
	phone := f.addProduct(t, "Phone", "100", 10)
	cable := f.addProduct(t, "Cable", "5", 4)
	id := f.place(t, customer.ID, item(phone.ID, 2), item(cable.ID, 4), item(phone.ID, 1))
	assert.Equal(t, 7, f.stock(t, phone.ID))
	assert.Equal(t, 0, f.stock(t, cable.ID))

	require.NoError(t, f.svc.CancelOrder(context.Background(), id))

	order, err := f.svc.GetOrder(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, order.Status)
	assert.Nil(t, order.CompletedAt)
	assert.Equal(t, 10, f.stock(t, phone.ID))
	assert.Equal(t, 4, f.stock(t, cable.ID))

	err = f.svc.CancelOrder(context.Background(), id)
	require.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, err, domain.ErrCancelNotPending)
	assert.Equal(t, 10, f.stock(t, phone.ID))

	require.ErrorIs(t, f.svc.CancelOrder(context.Background(), uuid.New()), ErrNotFound)
}

func TestCancelOrder_AfterCompleteFailsAndKeepsStock(t *testing.T) {
	f := newFixture(t)
	customer := f.addCustomer(t)
	product := f.addProduct(t, "Phone", "100", 5)
	id := f.place(t, customer.ID, item(product.ID, 2))
	require.NoError(t, f.svc.CompleteOrder(context.Background(), id))

	err := f.svc.CancelOrder(context.Background(), id)
	require.ErrorIs(t, err, ErrInvalidState)

	order, err := f.svc.GetOrder(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, order.Status)
	assert.Equal(t, 3, f.stock(t, product.ID))
}

func TestCancelOrder_SkipsProductsThatNoLongerExist(t *testing.T) {
	f := newFixture(t)
	customer := f.addCustomer(t)
	kept := f.addProduct(t, "Phone", "100", 5)
	gone := f.addProduct(t, "Discontinued", "10", 5)
	id := f.place(t, customer.ID, item(kept.ID, 1), item(gone.ID, 1))

	// Rewrite the stored order so one item references a product id that was never stocked.
	require.NoError(t, f.store.Update(func(w *memstore.Writer) error {
		order, ok := w.Order(id)
		require.True(t, ok)
		order.Items[1].ProductID = uuid.New()
		w.PutOrder(order)
		return nil
	}))

	require.NoError(t, f.svc.CancelOrder(context.Background(), id))
	assert.Equal(t, 5, f.stock(t, kept.ID))
	assert.Equal(t, 4, f.stock(t, gone.ID))
}

func TestGetOrder_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetOrder(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, ports.ErrOrderNotFound)
}

func TestGetSummary(t *testing.T) {
	f := newFixture(t)
	customer := f.addCustomer(t)
	product := f.addProduct(t, "Phone", "100", 10)

	f.place(t, customer.ID, item(product.ID, 1))
	completed := f.place(t, customer.ID, item(product.ID, 1))
	require.NoError(t, f.svc.CompleteOrder(context.Background(), completed))
	cancelled := f.place(t, customer.ID, item(product.ID, 1))
	require.NoError(t, f.svc.CancelOrder(context.Background(), cancelled))

	summary, err := f.svc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.TotalOrders)
	assert.Equal(t, int64(1), summary.PendingOrders)
	assert.Equal(t, int64(1), summary.CompletedOrders)
	assert.Equal(t, int64(1), summary.CancelledOrders)
	assert.True(t, summary.TotalRevenue.Equal(decimal.NewFromInt(100)))
	assert.True(t, summary.PendingRevenue.Equal(decimal.NewFromInt(100)))
}

func TestGetSummary_Empty(t *testing.T) {
	f := newFixture(t)
	summary, err := f.svc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.TotalOrders)
	assert.True(t, summary.TotalRevenue.IsZero())
	assert.True(t, summary.PendingRevenue.IsZero())
}

func TestGetPaged_Pagination(t *testing.T) {
	f := newFixture(t)
	customer := f.addCustomer(t)
	product := f.addProduct(t, "Phone", "1", 100)
	for i := 0; i < 23; i++ {
		f.place(t, customer.ID, item(product.ID, 1))
	}

	last, err := f.svc.GetPaged(context.Background(), types.ListOrdersInput{PageNumber: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, last.Items, 3)
	assert.Equal(t, int64(23), last.TotalCount)
	assert.Equal(t, 3, last.PageNumber)
	assert.Equal(t, 10, last.PageSize)

	beyond, err := f.svc.GetPaged(context.Background(), types.ListOrdersInput{PageNumber: 9, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, int64(23), beyond.TotalCount)

	normalized, err := f.svc.GetPaged(context.Background(), types.ListOrdersInput{PageNumber: 0, PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, normalized.PageNumber)
	assert.Equal(t, 10, normalized.PageSize)
	assert.Len(t, normalized.Items, 10)
}

func TestGetPaged_HugePageNumberIsEmpty(t *testing.T) {
	f := newFixture(t)
	customer := f.addCustomer(t)
	product := f.addProduct(t, "Phone", "1", 10)
	f.place(t, customer.ID, item(product.ID, 1))

	var result paging.Result[*domain.Order]
	require.NotPanics(t, func() {
		var err error
		result, err = f.svc.GetPaged(context.Background(), types.ListOrdersInput{PageNumber: 1152921504606846977, PageSize: 10})
		require.NoError(t, err)
	})
	assert.Empty(t, result.Items)
	assert.Equal(t, int64(1), result.TotalCount)
	assert.Equal(t, 1152921504606846977, result.PageNumber)
}

func TestGetPaged_FilterAndSort(t *testing.T) {
	f := newFixture(t)
	customer := f.addCustomer(t)
	product := f.addProduct(t, "Phone", "10", 100)
	small := f.place(t, customer.ID, item(product.ID, 1))
	large := f.place(t, customer.ID, item(product.ID, 3))
	medium := f.place(t, customer.ID, item(product.ID, 2))
	require.NoError(t, f.svc.CompleteOrder(context.Background(), medium))
	require.NoError(t, f.svc.CancelOrder(context.Background(), large))

	pending, err := f.svc.GetPaged(context.Background(), types.ListOrdersInput{Status: "PENDING"})
	require.NoError(t, err)
	require.Len(t, pending.Items, 1)
	assert.Equal(t, small, pending.Items[0].ID)
	assert.Equal(t, int64(1), pending.TotalCount)

	byTotal, err := f.svc.GetPaged(context.Background(), types.ListOrdersInput{SortBy: "totalAmount", SortDirection: "desc"})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{large, medium, small}, ids(byTotal.Items))

	byCreatedAsc, err := f.svc.GetPaged(context.Background(), types.ListOrdersInput{SortBy: "nonsense", SortDirection: "ASC"})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{small, large, medium}, ids(byCreatedAsc.Items))

	byCreatedDefault, err := f.svc.GetPaged(context.Background(), types.ListOrdersInput{SortDirection: "desc"})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{medium, large, small}, ids(byCreatedDefault.Items))

	byStatus, err := f.svc.GetPaged(context.Background(), types.ListOrdersInput{SortBy: "status"})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{small, medium, large}, ids(byStatus.Items))
}

func TestGetPaged_InvalidStatus(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetPaged(context.Background(), types.ListOrdersInput{Status: "bogus"})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = f.svc.GetPaged(context.Background(), types.ListOrdersInput{Status: "   "})
	require.NoError(t, err)
}

func ids(orders []*domain.Order) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(orders))
	for _, order := range orders {
		out = append(out, order.ID)
	}
	return out
}
