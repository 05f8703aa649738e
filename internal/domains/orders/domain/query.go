package domain

import (
	"strings"

	"github.com/Apurer/retail-inventory-api/internal/shared/paging"
)

// SortKey selects the column orders are listed by.
type SortKey string

const (
	SortCreatedAt   SortKey = "createdAt"
	SortTotalAmount SortKey = "totalAmount"
	SortStatus      SortKey = "status"
)

// ParseSortKey falls back to createdAt for unknown keys.
func ParseSortKey(raw string) SortKey {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "totalamount":
		return SortTotalAmount
	case "status":
		return SortStatus
	default:
		return SortCreatedAt
	}
}

// ListQuery selects one page of orders, optionally filtered by status.
type ListQuery struct {
	Page      paging.Page
	Status    *Status
	SortBy    SortKey
	Direction paging.Direction
}
