package application

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	catalogports "github.com/Apurer/retail-inventory-api/internal/domains/catalog/ports"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/application/types"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/ports"
	"github.com/Apurer/retail-inventory-api/internal/shared/paging"
)

// Service is the order lifecycle and stock-reservation engine.
type Service struct {
	repo      ports.Repository
	uow       ports.UnitOfWork
	customers ports.IDLister
	products  ports.IDLister

	now   func() time.Time
	newID func() uuid.UUID

	rngMu sync.Mutex
	rng   *rand.Rand
}

type Option func(*Service)

// WithClock overrides the time source used for creation and completion stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides order and item identity generation.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithRand sets the random source used by GenerateRandomOrders.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// NewService wires the engine. customers and products feed random generation only.
func NewService(repo ports.Repository, uow ports.UnitOfWork, customers, products ports.IDLister, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		uow:       uow,
		customers: customers,
		products:  products,
		now:       time.Now,
		newID:     uuid.New,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder validates the request, then deducts stock and persists the order in one unit of work.
func (s *Service) CreateOrder(ctx context.Context, input types.CreateOrderInput) (uuid.UUID, error) {
	lines := make([]domain.Line, 0, len(input.Items))
	for _, item := range input.Items {
		lines = append(lines, domain.Line{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	if err := domain.ValidatePlacement(input.CustomerID, lines); err != nil {
		return uuid.Nil, mapError(err)
	}

	var orderID uuid.UUID
	err := s.uow.Within(ctx, func(ctx context.Context, tx ports.Tx) error {
		if _, err := tx.Customers().GetCustomer(ctx, input.CustomerID); err != nil {
			return err
		}
		if err := lockProducts(ctx, tx, lines); err != nil {
			return err
		}
		id := s.newID()
		items := make([]domain.OrderItem, 0, len(lines))
		for _, line := range lines {
			product, err := tx.Stock().GetForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if err := product.CanReserve(line.Quantity); err != nil {
				return err
			}
			if err := tx.Stock().Deduct(ctx, product.ID, line.Quantity); err != nil {
				return err
			}
			items = append(items, domain.OrderItem{
				ID:        s.newID(),
				OrderID:   id,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
			})
		}
		order, err := domain.NewOrder(id, input.CustomerID, items, s.now())
		if err != nil {
			return err
		}
		if err := tx.Orders().Add(ctx, order); err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return uuid.Nil, mapError(err)
	}
	return orderID, nil
}

// lockProducts takes the row locks of every distinct product in id order so that concurrent
// placements touching the same products cannot deadlock. Missing products are left to the
// per item pass, which reports them in request order.
func lockProducts(ctx context.Context, tx ports.Tx, lines []domain.Line) error {
	ids := make([]uuid.UUID, 0, len(lines))
	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	for _, id := range ids {
		if _, err := tx.Stock().GetForUpdate(ctx, id); err != nil && !errors.Is(err, catalogports.ErrProductNotFound) {
			return err
		}
	}
	return nil
}

// GetOrder loads an order with its items.
func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

// CompleteOrder moves a pending order to Completed.
func (s *Service) CompleteOrder(ctx context.Context, id uuid.UUID) error {
	return mapError(s.uow.Within(ctx, func(ctx context.Context, tx ports.Tx) error {
		order, err := tx.Orders().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := order.Complete(s.now()); err != nil {
			return err
		}
		return tx.Orders().UpdateStatus(ctx, order)
	}))
}

// CancelOrder moves a pending order to Cancelled and returns its quantities to stock.
func (s *Service) CancelOrder(ctx context.Context, id uuid.UUID) error {
	return mapError(s.uow.Within(ctx, func(ctx context.Context, tx ports.Tx) error {
		order, err := tx.Orders().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := order.Cancel(); err != nil {
			return err
		}
		for _, item := range order.Items {
			err := tx.Stock().Restore(ctx, item.ProductID, item.Quantity)
			if errors.Is(err, catalogports.ErrProductNotFound) {
				continue
			}
			if err != nil {
				return err
			}
		}
		return tx.Orders().UpdateStatus(ctx, order)
	}))
}

// GetSummary aggregates order counts and revenue by status.
func (s *Service) GetSummary(ctx context.Context) (domain.Summary, error) {
	summary, err := s.repo.Summary(ctx)
	if err != nil {
		return domain.Summary{}, mapError(err)
	}
	return summary, nil
}

// GetPaged lists one page of orders after normalizing paging and validating the status filter.
func (s *Service) GetPaged(ctx context.Context, input types.ListOrdersInput) (paging.Result[*domain.Order], error) {
	page := paging.Normalize(input.PageNumber, input.PageSize)
	query := domain.ListQuery{
		Page:      page,
		SortBy:    domain.ParseSortKey(input.SortBy),
		Direction: paging.ParseDirection(input.SortDirection),
	}
	if raw := strings.TrimSpace(input.Status); raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			return paging.Result[*domain.Order]{}, mapError(err)
		}
		query.Status = &status
	}
	total, err := s.repo.Count(ctx, query.Status)
	if err != nil {
		return paging.Result[*domain.Order]{}, mapError(err)
	}
	orders, err := s.repo.List(ctx, query)
	if err != nil {
		return paging.Result[*domain.Order]{}, mapError(err)
	}
	return paging.NewResult(orders, total, page), nil
}

var _ ports.Service = (*Service)(nil)
