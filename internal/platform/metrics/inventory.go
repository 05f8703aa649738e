// Package metrics exposes inventory state as Prometheus gauges computed at scrape time.
package metrics

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	ordersdomain "github.com/Apurer/retail-inventory-api/internal/domains/orders/domain"
)

const (
	namespace = "retail"
	// DefaultLowStockThreshold is the stock level at or below which a product counts as low.
	DefaultLowStockThreshold = 5
	scrapeTimeout            = 5 * time.Second
)

// OrderSummarizer yields the order aggregate.
type OrderSummarizer interface {
	Summary(ctx context.Context) (ordersdomain.Summary, error)
}

// LowStockCounter counts products at or below a threshold.
type LowStockCounter interface {
	CountLowStock(ctx context.Context, threshold int) (int64, error)
}

// InventoryCollector reads order and stock state on every scrape.
type InventoryCollector struct {
	orders    OrderSummarizer
	stock     LowStockCounter
	threshold int
	logger    *slog.Logger

	ordersDesc   *prometheus.Desc
	revenueDesc  *prometheus.Desc
	lowStockDesc *prometheus.Desc
	upDesc       *prometheus.Desc
}

// Option customizes the collector.
type Option func(*InventoryCollector)

// WithLowStockThreshold overrides DefaultLowStockThreshold.
func WithLowStockThreshold(threshold int) Option {
	return func(c *InventoryCollector) {
		if threshold >= 0 {
			c.threshold = threshold
		}
	}
}

// WithLogger reports scrape failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *InventoryCollector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

var _ prometheus.Collector = (*InventoryCollector)(nil)

func NewInventoryCollector(orders OrderSummarizer, stock LowStockCounter, opts ...Option) *InventoryCollector {
	c := &InventoryCollector{
		orders:    orders,
		stock:     stock,
		threshold: DefaultLowStockThreshold,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		ordersDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "orders", "total"),
			"Orders currently stored, by status.",
			[]string{"status"}, nil,
		),
		revenueDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "orders", "revenue"),
			"Sum of order totals, by status.",
			[]string{"status"}, nil,
		),
		lowStockDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "products", "low_stock"),
			"Products with stock at or below the threshold label.",
			[]string{"threshold"}, nil,
		),
		upDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "inventory", "scrape_success"),
			"1 when the last scrape read every source.",
			nil, nil,
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register adds the collector to registerer, DefaultRegisterer when nil.
func (c *InventoryCollector) Register(registerer prometheus.Registerer) error {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return registerer.Register(c)
}

func (c *InventoryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.ordersDesc
	ch <- c.revenueDesc
	ch <- c.lowStockDesc
	ch <- c.upDesc
}

func (c *InventoryCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), scrapeTimeout)
	defer cancel()

	up := 1.0
	if c.orders != nil {
		summary, err := c.orders.Summary(ctx)
		if err != nil {
			up = 0
			c.logger.Warn("inventory scrape: order summary failed", slog.String("error", err.Error()))
		} else {
			c.collectOrders(ch, summary)
		}
	}
	if c.stock != nil {
		low, err := c.stock.CountLowStock(ctx, c.threshold)
		if err != nil {
			up = 0
			c.logger.Warn("inventory scrape: low stock count failed", slog.String("error", err.Error()))
		} else {
			ch <- prometheus.MustNewConstMetric(c.lowStockDesc, prometheus.GaugeValue, float64(low), strconv.Itoa(c.threshold))
		}
	}
	ch <- prometheus.MustNewConstMetric(c.upDesc, prometheus.GaugeValue, up)
}

func (c *InventoryCollector) collectOrders(ch chan<- prometheus.Metric, summary ordersdomain.Summary) {
	counts := map[ordersdomain.Status]int64{
		ordersdomain.StatusPending:   summary.PendingOrders,
		ordersdomain.StatusCompleted: summary.CompletedOrders,
		ordersdomain.StatusCancelled: summary.CancelledOrders,
	}
	for _, status := range ordersdomain.Statuses {
		ch <- prometheus.MustNewConstMetric(c.ordersDesc, prometheus.GaugeValue, float64(counts[status]), status.String())
	}
	pending, _ := summary.PendingRevenue.Float64()
	completed, _ := summary.TotalRevenue.Float64()
	ch <- prometheus.MustNewConstMetric(c.revenueDesc, prometheus.GaugeValue, pending, ordersdomain.StatusPending.String())
	ch <- prometheus.MustNewConstMetric(c.revenueDesc, prometheus.GaugeValue, completed, ordersdomain.StatusCompleted.String())
}
