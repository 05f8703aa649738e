// Package memstore is the in-process database behind the memory adapters. Catalog and order
// adapters share one Store so a unit of work can touch stock and orders atomically.
package memstore

import (
	"sync"

	"github.com/google/uuid"

	catalogdomain "github.com/Apurer/retail-inventory-api/internal/domains/catalog/domain"
	ordersdomain "github.com/Apurer/retail-inventory-api/internal/domains/orders/domain"
)

// Store holds every table in memory. Values are cloned on the way in and out.
type Store struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]catalogdomain.Customer
	products  map[uuid.UUID]catalogdomain.Product
	orders    map[uuid.UUID]*ordersdomain.Order
	// insertion order keeps listings stable under equal sort keys
	customerSeq []uuid.UUID
	productSeq  []uuid.UUID
	orderSeq    []uuid.UUID
}

// New creates an empty store.
func New() *Store {
	return &Store{
		customers: map[uuid.UUID]catalogdomain.Customer{},
		products:  map[uuid.UUID]catalogdomain.Product{},
		orders:    map[uuid.UUID]*ordersdomain.Order{},
	}
}

// View runs fn with a consistent read-only snapshot.
func (s *Store) View(fn func(r *Reader) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&Reader{store: s})
}

// Update runs fn exclusively. Writes are undone when fn returns an error or panics.
func (s *Store) Update(fn func(w *Writer) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := &Writer{Reader: Reader{store: s}}
	defer func() {
		if p := recover(); p != nil {
			w.rollback()
			panic(p)
		}
		if err != nil {
			w.rollback()
		}
	}()
	return fn(w)
}

// Reader reads tables while a lock is held.
type Reader struct {
	store *Store
}

// Customer returns a copy of the customer.
func (r *Reader) Customer(id uuid.UUID) (*catalogdomain.Customer, bool) {
	customer, ok := r.store.customers[id]
	if !ok {
		return nil, false
	}
	return &customer, true
}

// Customers returns copies of all customers in insertion order.
func (r *Reader) Customers() []*catalogdomain.Customer {
	list := make([]*catalogdomain.Customer, 0, len(r.store.customerSeq))
	for _, id := range r.store.customerSeq {
		customer := r.store.customers[id]
		list = append(list, &customer)
	}
	return list
}

// Product returns a copy of the product.
func (r *Reader) Product(id uuid.UUID) (*catalogdomain.Product, bool) {
	product, ok := r.store.products[id]
	if !ok {
		return nil, false
	}
	return &product, true
}

// Products returns copies of all products in insertion order.
func (r *Reader) Products() []*catalogdomain.Product {
	list := make([]*catalogdomain.Product, 0, len(r.store.productSeq))
	for _, id := range r.store.productSeq {
		product := r.store.products[id]
		list = append(list, &product)
	}
	return list
}

// Order returns a deep copy of the order.
func (r *Reader) Order(id uuid.UUID) (*ordersdomain.Order, bool) {
	order, ok := r.store.orders[id]
	if !ok {
		return nil, false
	}
	return order.Clone(), true
}

// Orders returns deep copies of all orders in insertion order.
func (r *Reader) Orders() []*ordersdomain.Order {
	list := make([]*ordersdomain.Order, 0, len(r.store.orderSeq))
	for _, id := range r.store.orderSeq {
		list = append(list, r.store.orders[id].Clone())
	}
	return list
}

// Writer mutates tables and journals how to undo each change.
type Writer struct {
	Reader
	undo []func()
}

// PutCustomer inserts or replaces a customer.
func (w *Writer) PutCustomer(customer *catalogdomain.Customer) {
	s := w.store
	previous, existed := s.customers[customer.ID]
	s.customers[customer.ID] = *customer
	if existed {
		w.undo = append(w.undo, func() { s.customers[previous.ID] = previous })
		return
	}
	s.customerSeq = append(s.customerSeq, customer.ID)
	id := customer.ID
	w.undo = append(w.undo, func() {
		delete(s.customers, id)
		s.customerSeq = s.customerSeq[:len(s.customerSeq)-1]
	})
}

// PutProduct inserts or replaces a product.
func (w *Writer) PutProduct(product *catalogdomain.Product) {
	s := w.store
	previous, existed := s.products[product.ID]
	s.products[product.ID] = *product
	if existed {
		w.undo = append(w.undo, func() { s.products[previous.ID] = previous })
		return
	}
	s.productSeq = append(s.productSeq, product.ID)
	id := product.ID
	w.undo = append(w.undo, func() {
		delete(s.products, id)
		s.productSeq = s.productSeq[:len(s.productSeq)-1]
	})
}

// PutOrder inserts or replaces an order.
func (w *Writer) PutOrder(order *ordersdomain.Order) {
	s := w.store
	previous, existed := s.orders[order.ID]
	s.orders[order.ID] = order.Clone()
	if existed {
		w.undo = append(w.undo, func() { s.orders[previous.ID] = previous })
		return
	}
	s.orderSeq = append(s.orderSeq, order.ID)
	id := order.ID
	w.undo = append(w.undo, func() {
		delete(s.orders, id)
		s.orderSeq = s.orderSeq[:len(s.orderSeq)-1]
	})
}

// Reset drops every row. Intended for tests and contract state setup.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = map[uuid.UUID]catalogdomain.Customer{}
	s.products = map[uuid.UUID]catalogdomain.Product{}
	s.orders = map[uuid.UUID]*ordersdomain.Order{}
	s.customerSeq, s.productSeq, s.orderSeq = nil, nil, nil
}

func (w *Writer) rollback() {
	for i := len(w.undo) - 1; i >= 0; i-- {
		w.undo[i]()
	}
	w.undo = nil
}
