package view

import (
	"fmt"

	"example.com/marketplace/storefront/internal/domain/timestamp"
)

// StockTier is the three-way stock presentation contract. It also gates
// whether the add-to-cart control is enabled.
type StockTier int

const (
	TierOutOfStock StockTier = iota
	TierLowStock
	TierInStock
)

const lowStockThreshold = 10

func TierFor(stock int64) StockTier {
	switch {
	case stock == 0:
		return TierOutOfStock
	case stock < lowStockThreshold:
		return TierLowStock
	default:
		return TierInStock
	}
}

func StockLabel(stock int64) string {
	switch TierFor(stock) {
	case TierOutOfStock:
		return "Out of Stock"
	case TierLowStock:
		return fmt.Sprintf("Low Stock (%d left)", stock)
	default:
		return fmt.Sprintf("In Stock (%d available)", stock)
	}
}

func StockClass(stock int64) string {
	switch TierFor(stock) {
	case TierOutOfStock:
		return "out-of-stock"
	case TierLowStock:
		return "low-stock"
	default:
		return "in-stock"
	}
}

// FormatPrice renders currency with exactly two decimal places.
func FormatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// FormatProductRef labels an order line whose product name was not
// recorded.
func FormatProductRef(id int64) string {
	return fmt.Sprintf("Product #%d", id)
}

func FormatDate(t timestamp.Time) string {
	if !t.IsSet() {
		return "N/A"
	}
	return t.Format("Jan 2, 2006, 03:04 PM")
}
