package postgres

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Apurer/retail-inventory-api/internal/domains/orders/domain"
)

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
	Quantity  int             `gorm:"column:quantity;not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(18,2);not null"`
	Position  int             `gorm:"column:position;not null"`
}

func (orderItemRecord) TableName() string { return "order_items" }

func toRecords(order *domain.Order) (orderRecord, []orderItemRecord) {
	rec := orderRecord{
		ID:          order.ID,
		CustomerID:  order.CustomerID,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
		CompletedAt: order.CompletedAt,
	}
	items := make([]orderItemRecord, 0, len(order.Items))
	for i, item := range order.Items {
		items = append(items, orderItemRecord{
			ID:        item.ID,
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Position:  i,
		})
	}
	return rec, items
}

func (r orderRecord) toDomain(items []orderItemRecord) *domain.Order {
	order := &domain.Order{
		ID:          r.ID,
		CustomerID:  r.CustomerID,
		Status:      domain.Status(r.Status),
		TotalAmount: r.TotalAmount,
		CreatedAt:   r.CreatedAt.UTC(),
		Items:       make([]domain.OrderItem, 0, len(items)),
	}
	if r.CompletedAt != nil {
		at := r.CompletedAt.UTC()
		order.CompletedAt = &at
	}
	for _, item := range items {
		order.Items = append(order.Items, domain.OrderItem{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return order
}
