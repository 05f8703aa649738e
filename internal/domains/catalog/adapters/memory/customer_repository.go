package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/ports"
	"github.com/Apurer/retail-inventory-api/internal/platform/memstore"
)

var _ ports.CustomerRepository = (*CustomerRepository)(nil)

// CustomerRepository is an in-memory customer persistence adapter.
type CustomerRepository struct {
	store *memstore.Store
}

func NewCustomerRepository(store *memstore.Store) *CustomerRepository {
	return &CustomerRepository{store: store}
}

// Save inserts or replaces customers. Emails and external ids must stay unique.
func (r *CustomerRepository) Save(_ context.Context, customers ...*domain.Customer) error {
	return r.store.Update(func(w *memstore.Writer) error {
		for _, customer := range customers {
			if customer == nil {
				return errors.New("customer is nil")
			}
			if err := customer.Validate(); err != nil {
				return err
			}
			for _, existing := range w.Customers() {
				if existing.ID == customer.ID {
					continue
				}
				if strings.EqualFold(existing.Email, customer.Email) || (customer.ExternalID != 0 && existing.ExternalID == customer.ExternalID) {
					return ports.ErrDuplicate
				}
			}
			w.PutCustomer(customer)
		}
		return nil
	})
}

func (r *CustomerRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Customer, error) {
	var customer *domain.Customer
	err := r.store.View(func(rd *memstore.Reader) error {
		found, ok := rd.Customer(id)
		if !ok {
			return ports.ErrCustomerNotFound
		}
		customer = found
		return nil
	})
	return customer, err
}

func (r *CustomerRepository) List(_ context.Context, query ports.CustomerQuery) ([]*domain.Customer, error) {
	var page []*domain.Customer
	err := r.store.View(func(rd *memstore.Reader) error {
		customers := rd.Customers()
		sort.SliceStable(customers, func(i, j int) bool {
			cmp := compareCustomers(customers[i], customers[j], query.SortBy)
			if query.Direction.Desc() {
				return cmp > 0
			}
			return cmp < 0
		})
		start, end := query.Page.Window(len(customers))
		page = customers[start:end]
		return nil
	})
	return page, err
}

func (r *CustomerRepository) Count(_ context.Context) (int64, error) {
	var count int64
	err := r.store.View(func(rd *memstore.Reader) error {
		count = int64(len(rd.Customers()))
		return nil
	})
	return count, err
}

func (r *CustomerRepository) ListIDs(_ context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.store.View(func(rd *memstore.Reader) error {
		for _, customer := range rd.Customers() {
			ids = append(ids, customer.ID)
		}
		return nil
	})
	return ids, err
}

func (r *CustomerRepository) ExistingExternalIDs(_ context.Context, externalIDs []int) (map[int]struct{}, error) {
	wanted := toSet(externalIDs)
	found := map[int]struct{}{}
	err := r.store.View(func(rd *memstore.Reader) error {
		for _, customer := range rd.Customers() {
			if _, ok := wanted[customer.ExternalID]; ok {
				found[customer.ExternalID] = struct{}{}
			}
		}
		return nil
	})
	return found, err
}

func compareCustomers(a, b *domain.Customer, key domain.CustomerSortKey) int {
	switch key {
	case domain.CustomerSortFirstName:
		return compareStrings(a.FirstName, b.FirstName)
	case domain.CustomerSortEmail:
		return compareStrings(a.Email, b.Email)
	default:
		return compareStrings(a.LastName, b.LastName)
	}
}
