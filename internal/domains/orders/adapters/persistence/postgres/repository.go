package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/retail-inventory-api/internal/domains/orders/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

const statusRankExpr = "CASE status WHEN 'Pending' THEN 0 WHEN 'Completed' THEN 1 ELSE 2 END"

// Repository reads orders and their items from PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed order reader. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return loadOrder(ctx, r.db, id, false)
}

func (r *Repository) List(ctx context.Context, query domain.ListQuery) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	dir := "ASC"
	if query.Direction.Desc() {
		dir = "DESC"
	}
	column := "created_at"
	switch query.SortBy {
	case domain.SortTotalAmount:
		column = "total_amount"
	case domain.SortStatus:
		column = statusRankExpr
	}
	tx := r.db.WithContext(ctx).Model(&orderRecord{})
	if query.Status != nil {
		tx = tx.Where("status = ?", string(*query.Status))
	}
	var records []orderRecord
	if err := tx.
		Order(fmt.Sprintf("%s %s, id %s", column, dir, dir)).
		Offset(query.Page.Offset()).
		Limit(query.Page.Limit()).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return withItems(ctx, r.db, records)
}

func (r *Repository) Count(ctx context.Context, status *domain.Status) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	tx := r.db.WithContext(ctx).Model(&orderRecord{})
	if status != nil {
		tx = tx.Where("status = ?", string(*status))
	}
	var count int64
	err := tx.Count(&count).Error
	return count, err
}

// Summary aggregates order counts and revenue per status in one grouped query.
func (r *Repository) Summary(ctx context.Context) (domain.Summary, error) {
	if err := r.ensureDB(); err != nil {
		return domain.Summary{}, err
	}
	var rows []struct {
		Status  string
		Count   int64
		Revenue decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&orderRecord{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS revenue").
		Group("status").
		Scan(&rows).Error; err != nil {
		return domain.Summary{}, err
	}
	buckets := make([]domain.StatusBucket, 0, len(rows))
	for _, row := range rows {
		buckets = append(buckets, domain.StatusBucket{
			Status:  domain.Status(row.Status),
			Count:   row.Count,
			Revenue: row.Revenue,
		})
	}
	return domain.NewSummary(buckets), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func loadOrder(ctx context.Context, db *gorm.DB, id uuid.UUID, lock bool) (*domain.Order, error) {
	tx := db.WithContext(ctx)
	if lock {
		tx = tx.Clauses(lockForUpdate)
	}
	var record orderRecord
	if err := tx.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrOrderNotFound
		}
		return nil, err
	}
	orders, err := withItems(ctx, db, []orderRecord{record})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

// withItems attaches items to records with one explicit IN query, preserving record order.
func withItems(ctx context.Context, db *gorm.DB, records []orderRecord) ([]*domain.Order, error) {
	orders := make([]*domain.Order, 0, len(records))
	if len(records) == 0 {
		return orders, nil
	}
	ids := make([]uuid.UUID, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	var items []orderItemRecord
	if err := db.WithContext(ctx).
		Where("order_id IN ?", ids).
		Order("order_id, position").
		Find(&items).Error; err != nil {
		return nil, err
	}
	byOrder := make(map[uuid.UUID][]orderItemRecord, len(records))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for _, rec := range records {
		orders = append(orders, rec.toDomain(byOrder[rec.ID]))
	}
	return orders, nil
}
