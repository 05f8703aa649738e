package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/retail-inventory-api/internal/domains/orders/application/types"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/domain"
)

func TestFromDomainOrderRendersMoneyWithTwoDecimals(t *testing.T) {
	order := &domain.Order{
		ID:          uuid.New(),
		CustomerID:  uuid.New(),
		Status:      domain.StatusPending,
		TotalAmount: decimal.RequireFromString("20"),
		CreatedAt:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Items: []domain.OrderItem{
			{ProductID: uuid.New(), Quantity: 2, UnitPrice: decimal.RequireFromString("10")},
		},
	}

	body, err := json.Marshal(FromDomainOrder(order))
	require.NoError(t, err)

	assert.Contains(t, string(body), `"totalAmount":20.00`)
	assert.Contains(t, string(body), `"unitPrice":10.00`)
	assert.Contains(t, string(body), `"subtotal":20.00`)
	assert.Contains(t, string(body), `"status":"Pending"`)
	assert.NotContains(t, string(body), "completedAt")
}

func TestToCreateInputKeepsLineOrder(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	input := ToCreateInput(CreateOrder{
		CustomerID: uuid.New(),
		Items:      []CreateOrderItem{{ProductID: first, Quantity: 1}, {ProductID: second, Quantity: 3}},
	})

	require.Len(t, input.Items, 2)
	assert.Equal(t, first, input.Items[0].ProductID)
	assert.Equal(t, 3, input.Items[1].Quantity)
}

func TestFromGenerationSummaryEchoesRequestedCount(t *testing.T) {
	result := FromGenerationSummary(5, types.GenerationSummary{Requested: 5, Created: 4, Completed: 2, Cancelled: 1, Pending: 1, Failed: 1})

	assert.Equal(t, GenerationResult{ImportedCount: 5, Created: 4, Completed: 2, Cancelled: 1, Pending: 1, Failed: 1}, result)
}
