package domain

import "github.com/shopspring/decimal"

// Summary aggregates order counts and revenue by status.
type Summary struct {
	TotalOrders     int64
	PendingOrders   int64
	CompletedOrders int64
	CancelledOrders int64
	// TotalRevenue sums completed order totals only.
	TotalRevenue   decimal.Decimal
	PendingRevenue decimal.Decimal
}

// StatusBucket is one status group of the aggregation.
type StatusBucket struct {
	Status  Status
	Count   int64
	Revenue decimal.Decimal
}

// NewSummary folds status buckets into a summary. Missing buckets count as zero.
func NewSummary(buckets []StatusBucket) Summary {
	summary := Summary{TotalRevenue: decimal.Zero, PendingRevenue: decimal.Zero}
	for _, bucket := range buckets {
		summary.TotalOrders += bucket.Count
		switch bucket.Status {
		case StatusPending:
			summary.PendingOrders += bucket.Count
			summary.PendingRevenue = summary.PendingRevenue.Add(bucket.Revenue)
		case StatusCompleted:
			summary.CompletedOrders += bucket.Count
			summary.TotalRevenue = summary.TotalRevenue.Add(bucket.Revenue)
		case StatusCancelled:
			summary.CancelledOrders += bucket.Count
		}
	}
	return summary
}
