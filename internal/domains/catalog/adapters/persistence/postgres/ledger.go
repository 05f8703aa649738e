package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/ports"
)

var (
	_ ports.StockLedger    = (*StockLedger)(nil)
	_ ports.CustomerLookup = (*CustomerLookup)(nil)
)

// StockLedger mutates stock inside the transaction tx. Product rows read through
// GetForUpdate stay locked until tx ends.
type StockLedger struct {
	tx *gorm.DB
}

func NewStockLedger(tx *gorm.DB) *StockLedger {
	return &StockLedger{tx: tx}
}

func (l *StockLedger) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var record productRecord
	err := l.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrProductNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Deduct decrements stock with a guarded update so stock never goes negative even
// when the row was not locked first.
func (l *StockLedger) Deduct(ctx context.Context, id uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	result := l.tx.WithContext(ctx).
		Model(&productRecord{}).
		Where("id = ? AND stock_quantity >= ?", id, quantity).
		Updates(map[string]any{
			"stock_quantity": gorm.Expr("stock_quantity - ?", quantity),
			"updated_at":     gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}
	product, err := l.GetForUpdate(ctx, id)
	if err != nil {
		return err
	}
	if err := product.CanReserve(quantity); err != nil {
		return err
	}
	return errors.New("stock deduction affected no rows")
}

func (l *StockLedger) Restore(ctx context.Context, id uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	result := l.tx.WithContext(ctx).
		Model(&productRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"stock_quantity": gorm.Expr("stock_quantity + ?", quantity),
			"updated_at":     gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrProductNotFound
	}
	return nil
}

// CustomerLookup reads customers inside the transaction tx.
type CustomerLookup struct {
	tx *gorm.DB
}

func NewCustomerLookup(tx *gorm.DB) *CustomerLookup {
	return &CustomerLookup{tx: tx}
}

func (l *CustomerLookup) GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var record customerRecord
	if err := l.tx.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrCustomerNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}
