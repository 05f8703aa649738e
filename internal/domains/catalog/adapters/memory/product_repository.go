package memory

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/ports"
	"github.com/Apurer/retail-inventory-api/internal/platform/memstore"
)

var _ ports.ProductRepository = (*ProductRepository)(nil)

// ProductRepository is an in-memory product persistence adapter.
type ProductRepository struct {
	store *memstore.Store
}

func NewProductRepository(store *memstore.Store) *ProductRepository {
	return &ProductRepository{store: store}
}

// Save inserts or replaces products. SKUs and external ids must stay unique.
func (r *ProductRepository) Save(_ context.Context, products ...*domain.Product) error {
	return r.store.Update(func(w *memstore.Writer) error {
		for _, product := range products {
			if product == nil {
				return errors.New("product is nil")
			}
			if err := product.Validate(); err != nil {
				return err
			}
			for _, existing := range w.Products() {
				if existing.ID == product.ID {
					continue
				}
				if existing.SKU == product.SKU || (product.ExternalID != 0 && existing.ExternalID == product.ExternalID) {
					return ports.ErrDuplicate
				}
			}
			w.PutProduct(product)
		}
		return nil
	})
}

func (r *ProductRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	var product *domain.Product
	err := r.store.View(func(rd *memstore.Reader) error {
		found, ok := rd.Product(id)
		if !ok {
			return ports.ErrProductNotFound
		}
		product = found
		return nil
	})
	return product, err
}

func (r *ProductRepository) List(_ context.Context, query ports.ProductQuery) ([]*domain.Product, error) {
	var page []*domain.Product
	err := r.store.View(func(rd *memstore.Reader) error {
		products := rd.Products()
		sort.SliceStable(products, func(i, j int) bool {
			cmp := compareProducts(products[i], products[j], query.SortBy)
			if query.Direction.Desc() {
				return cmp > 0
			}
			return cmp < 0
		})
		start, end := query.Page.Window(len(products))
		page = products[start:end]
		return nil
	})
	return page, err
}

func (r *ProductRepository) Count(_ context.Context) (int64, error) {
	var count int64
	err := r.store.View(func(rd *memstore.Reader) error {
		count = int64(len(rd.Products()))
		return nil
	})
	return count, err
}

// CountLowStock counts products with at most threshold units left.
func (r *ProductRepository) CountLowStock(_ context.Context, threshold int) (int64, error) {
	var count int64
	err := r.store.View(func(rd *memstore.Reader) error {
		for _, product := range rd.Products() {
			if product.StockQuantity <= threshold {
				count++
			}
		}
		return nil
	})
	return count, err
}

func (r *ProductRepository) ListIDs(_ context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.store.View(func(rd *memstore.Reader) error {
		for _, product := range rd.Products() {
			ids = append(ids, product.ID)
		}
		return nil
	})
	return ids, err
}

func (r *ProductRepository) ExistingExternalIDs(_ context.Context, externalIDs []int) (map[int]struct{}, error) {
	wanted := toSet(externalIDs)
	found := map[int]struct{}{}
	err := r.store.View(func(rd *memstore.Reader) error {
		for _, product := range rd.Products() {
			if _, ok := wanted[product.ExternalID]; ok {
				found[product.ExternalID] = struct{}{}
			}
		}
		return nil
	})
	return found, err
}

func compareProducts(a, b *domain.Product, key domain.ProductSortKey) int {
	switch key {
	case domain.ProductSortPrice:
		return a.Price.Cmp(b.Price)
	case domain.ProductSortStock:
		return compareInts(a.StockQuantity, b.StockQuantity)
	default:
		return compareStrings(a.Name, b.Name)
	}
}
