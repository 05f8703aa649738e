package migrations

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Columns mirror the postgres adapters.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&customerRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&userRecord{},
		&sessionRecord{},
	)
}

// Product schema mirrors the catalog Postgres adapter. The check constraint backs the
// guarded stock decrement.
type productRecord struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;column:id"`
	ExternalID    *int            `gorm:"column:external_id;uniqueIndex"`
	Name          string          `gorm:"column:name;not null;index"`
	SKU           string          `gorm:"column:sku;not null;uniqueIndex"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(18,2);not null;check:chk_products_price,price >= 0"`
	StockQuantity int             `gorm:"column:stock_quantity;not null;check:chk_products_stock,stock_quantity >= 0"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Customer schema mirrors the catalog Postgres adapter.
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

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;column:id"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;column:customer_id;not null;index"`
	Status      string          `gorm:"column:status;type:varchar(16);not null;index:idx_orders_status_created"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:numeric(18,2);not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;not null;autoCreateTime:false;index:idx_orders_status_created"`
	CompletedAt *time.Time      `gorm:"column:completed_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;column:id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;column:order_id;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;column:product_id;not null;index"`
	Quantity  int             `gorm:"column:quantity;not null;check:chk_order_items_quantity,quantity > 0"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(18,2);not null"`
	Position  int             `gorm:"column:position;not null"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;column:id"`
	Email        string    `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         string    `gorm:"column:role;type:varchar(16);not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the session store.
type sessionRecord struct {
	Token     string    `gorm:"primaryKey;column:token;size:128"`
	UserID    uuid.UUID `gorm:"type:uuid;column:user_id;not null;index"`
	Email     string    `gorm:"column:email;not null"`
	Role      string    `gorm:"column:role;type:varchar(16);not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }
