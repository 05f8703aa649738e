package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/ports"
)

var _ ports.CustomerRepository = (*CustomerRepository)(nil)

// CustomerRepository persists customers in PostgreSQL using GORM. The caller owns the DB lifecycle.
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Save upserts customers by id. A taken email or external id yields ports.ErrDuplicate.
func (r *CustomerRepository) Save(ctx context.Context, customers ...*domain.Customer) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if len(customers) == 0 {
		return nil
	}
	records := make([]customerRecord, 0, len(customers))
	for _, customer := range customers {
		if customer == nil {
			return errors.New("customer is nil")
		}
		if err := customer.Validate(); err != nil {
			return err
		}
		records = append(records, toCustomerRecord(customer))
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"first_name":  gorm.Expr("excluded.first_name"),
				"last_name":   gorm.Expr("excluded.last_name"),
				"email":       gorm.Expr("excluded.email"),
				"external_id": gorm.Expr("excluded.external_id"),
				"updated_at":  gorm.Expr("NOW()"),
			}),
		}).CreateInBatches(&records, saveBatchSize).Error
	return translateWriteError(err)
}

func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record customerRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrCustomerNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *CustomerRepository) List(ctx context.Context, query ports.CustomerQuery) ([]*domain.Customer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	column := "last_name"
	switch query.SortBy {
	case domain.CustomerSortFirstName:
		column = "first_name"
	case domain.CustomerSortEmail:
		column = "email"
	}
	dir := orderDirection(query.Direction.Desc())
	var records []customerRecord
	if err := r.db.WithContext(ctx).
		Order(fmt.Sprintf("LOWER(%s) %s, id %s", column, dir, dir)).
		Offset(query.Page.Offset()).
		Limit(query.Page.Limit()).
		Find(&records).Error; err != nil {
		return nil, err
	}
	customers := make([]*domain.Customer, 0, len(records))
	for i := range records {
		customers = append(customers, records[i].toDomain())
	}
	return customers, nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&customerRecord{}).Count(&count).Error
	return count, err
}

func (r *CustomerRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&customerRecord{}).Order("created_at, id").Pluck("id", &ids).Error
	return ids, err
}

func (r *CustomerRepository) ExistingExternalIDs(ctx context.Context, externalIDs []int) (map[int]struct{}, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return existingExternalIDs(ctx, r.db, &customerRecord{}, externalIDs)
}

func (r *CustomerRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres customer repository not configured")
	}
	return nil
}
