package postgres

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/ports"
)

const uniqueViolation = "23505"

type productRecord struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;column:id"`
	ExternalID    *int            `gorm:"column:external_id;uniqueIndex"`
	Name          string          `gorm:"column:name;not null;index"`
	SKU           string          `gorm:"column:sku;not null;uniqueIndex"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(18,2);not null"`
	StockQuantity int             `gorm:"column:stock_quantity;not null"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

type customerRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;column:id"`
	ExternalID *int      `gorm:"column:external_id;uniqueIndex"`
	FirstName  string    `gorm:"column:first_name;not null"`
	LastName   string    `gorm:"column:last_name;not null;index"`
	Email      string    `gorm:"column:email;not null;uniqueIndex"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (customerRecord) TableName() string { return "customers" }

func toProductRecord(p *domain.Product) productRecord {
	return productRecord{
		ID:            p.ID,
		ExternalID:    externalRef(p.ExternalID),
		Name:          p.Name,
		SKU:           p.SKU,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:            r.ID,
		ExternalID:    derefExternal(r.ExternalID),
		Name:          r.Name,
		SKU:           r.SKU,
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
	}
}

func toCustomerRecord(c *domain.Customer) customerRecord {
	return customerRecord{
		ID:         c.ID,
		ExternalID: externalRef(c.ExternalID),
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Email:      c.Email,
	}
}

func (r customerRecord) toDomain() *domain.Customer {
	return &domain.Customer{
		ID:         r.ID,
		ExternalID: derefExternal(r.ExternalID),
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
	}
}

// externalRef stores locally created rows with a NULL external id so the unique index ignores them.
func externalRef(id int) *int {
	if id == 0 {
		return nil
	}
	return &id
}

func derefExternal(id *int) int {
	if id == nil {
		return 0
	}
	return *id
}

func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errors.Join(ports.ErrDuplicate, err)
	}
	return err
}

func orderDirection(desc bool) string {
	if desc {
		return "DESC"
	}
	return "ASC"
}
