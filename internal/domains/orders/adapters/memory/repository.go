package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/Apurer/retail-inventory-api/internal/domains/orders/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/ports"
	"github.com/Apurer/retail-inventory-api/internal/platform/memstore"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order read adapter.
type Repository struct {
	store *memstore.Store
}

func NewRepository(store *memstore.Store) *Repository {
	return &Repository{store: store}
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	var order *domain.Order
	err := r.store.View(func(rd *memstore.Reader) error {
		found, ok := rd.Order(id)
		if !ok {
			return ports.ErrOrderNotFound
		}
		order = found
		return nil
	})
	return order, err
}

func (r *Repository) List(_ context.Context, query domain.ListQuery) ([]*domain.Order, error) {
	var page []*domain.Order
	err := r.store.View(func(rd *memstore.Reader) error {
		orders := filterByStatus(rd.Orders(), query.Status)
		sort.SliceStable(orders, func(i, j int) bool {
			c := compareOrders(orders[i], orders[j], query.SortBy)
			if query.Direction.Desc() {
				return c > 0
			}
			return c < 0
		})
		start, end := query.Page.Window(len(orders))
		page = orders[start:end]
		return nil
	})
	return page, err
}

func (r *Repository) Count(_ context.Context, status *domain.Status) (int64, error) {
	var count int64
	err := r.store.View(func(rd *memstore.Reader) error {
		count = int64(len(filterByStatus(rd.Orders(), status)))
		return nil
	})
	return count, err
}

func (r *Repository) Summary(_ context.Context) (domain.Summary, error) {
	var summary domain.Summary
	err := r.store.View(func(rd *memstore.Reader) error {
		buckets := map[domain.Status]*domain.StatusBucket{}
		for _, order := range rd.Orders() {
			bucket, ok := buckets[order.Status]
			if !ok {
				bucket = &domain.StatusBucket{Status: order.Status}
				buckets[order.Status] = bucket
			}
			bucket.Count++
			bucket.Revenue = bucket.Revenue.Add(order.TotalAmount)
		}
		list := make([]domain.StatusBucket, 0, len(buckets))
		for _, bucket := range buckets {
			list = append(list, *bucket)
		}
		summary = domain.NewSummary(list)
		return nil
	})
	return summary, err
}

func filterByStatus(orders []*domain.Order, status *domain.Status) []*domain.Order {
	if status == nil {
		return orders
	}
	filtered := orders[:0]
	for _, order := range orders {
		if order.Status == *status {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

func compareOrders(a, b *domain.Order, key domain.SortKey) int {
	switch key {
	case domain.SortTotalAmount:
		return a.TotalAmount.Cmp(b.TotalAmount)
	case domain.SortStatus:
		return a.Status.Rank() - b.Status.Rank()
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}
