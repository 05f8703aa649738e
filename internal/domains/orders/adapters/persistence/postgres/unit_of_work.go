package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogpostgres "github.com/Apurer/retail-inventory-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogports "github.com/Apurer/retail-inventory-api/internal/domains/catalog/ports"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/ports"
)

var (
	_ ports.UnitOfWork  = (*UnitOfWork)(nil)
	_ ports.OrderWriter = (*orderWriter)(nil)
)

var lockForUpdate = clause.Locking{Strength: "UPDATE"}

// UnitOfWork runs each unit inside a PostgreSQL transaction. Rows read for update are
// locked until commit or rollback.
type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx ports.Tx) error) error {
	if u == nil || u.db == nil {
		return errors.New("postgres unit of work not configured")
	}
	return u.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		return fn(ctx, &txScope{
			customers: catalogpostgres.NewCustomerLookup(gtx),
			stock:     catalogpostgres.NewStockLedger(gtx),
			orders:    &orderWriter{tx: gtx},
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
	tx *gorm.DB
}

func (o *orderWriter) Add(ctx context.Context, order *domain.Order) error {
	record, items := toRecords(order)
	if err := o.tx.WithContext(ctx).Create(&record).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ports.ErrOrderExists
		}
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return o.tx.WithContext(ctx).Create(&items).Error
}

func (o *orderWriter) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return loadOrder(ctx, o.tx, id, true)
}

func (o *orderWriter) UpdateStatus(ctx context.Context, order *domain.Order) error {
	result := o.tx.WithContext(ctx).
		Model(&orderRecord{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"status":       string(order.Status),
			"completed_at": order.CompletedAt,
			"updated_at":   gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrOrderNotFound
	}
	return nil
}
