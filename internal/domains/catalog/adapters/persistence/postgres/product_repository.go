package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/ports"
)

var _ ports.ProductRepository = (*ProductRepository)(nil)

const saveBatchSize = 200

// ProductRepository persists products in PostgreSQL using GORM. The caller owns the DB lifecycle.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Save upserts products by id. A taken SKU or external id yields ports.ErrDuplicate.
func (r *ProductRepository) Save(ctx context.Context, products ...*domain.Product) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if len(products) == 0 {
		return nil
	}
	records := make([]productRecord, 0, len(products))
	for _, product := range products {
		if product == nil {
			return errors.New("product is nil")
		}
		if err := product.Validate(); err != nil {
			return err
		}
		records = append(records, toProductRecord(product))
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":           gorm.Expr("excluded.name"),
				"sku":            gorm.Expr("excluded.sku"),
				"price":          gorm.Expr("excluded.price"),
				"stock_quantity": gorm.Expr("excluded.stock_quantity"),
				"external_id":    gorm.Expr("excluded.external_id"),
				"updated_at":     gorm.Expr("NOW()"),
			}),
		}).CreateInBatches(&records, saveBatchSize).Error
	return translateWriteError(err)
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrProductNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *ProductRepository) List(ctx context.Context, query ports.ProductQuery) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	column := "name"
	switch query.SortBy {
	case domain.ProductSortPrice:
		column = "price"
	case domain.ProductSortStock:
		column = "stock_quantity"
	}
	dir := orderDirection(query.Direction.Desc())
	var records []productRecord
	if err := r.db.WithContext(ctx).
		Order(fmt.Sprintf("%s %s, id %s", column, dir, dir)).
		Offset(query.Page.Offset()).
		Limit(query.Page.Limit()).
		Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&productRecord{}).Count(&count).Error
	return count, err
}

// CountLowStock counts products with at most threshold units left.
func (r *ProductRepository) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&productRecord{}).Where("stock_quantity <= ?", threshold).Count(&count).Error
	return count, err
}

func (r *ProductRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&productRecord{}).Order("created_at, id").Pluck("id", &ids).Error
	return ids, err
}

func (r *ProductRepository) ExistingExternalIDs(ctx context.Context, externalIDs []int) (map[int]struct{}, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return existingExternalIDs(ctx, r.db, &productRecord{}, externalIDs)
}

func (r *ProductRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func existingExternalIDs(ctx context.Context, db *gorm.DB, model any, externalIDs []int) (map[int]struct{}, error) {
	found := map[int]struct{}{}
	if len(externalIDs) == 0 {
		return found, nil
	}
	ids := make(pq.Int64Array, 0, len(externalIDs))
	for _, id := range externalIDs {
		ids = append(ids, int64(id))
	}
	var matches []int
	if err := db.WithContext(ctx).Model(model).
		Where("external_id = ANY(?)", ids).
		Pluck("external_id", &matches).Error; err != nil {
		return nil, err
	}
	for _, id := range matches {
		found[id] = struct{}{}
	}
	return found, nil
}
