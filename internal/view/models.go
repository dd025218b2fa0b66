// Package view maps state snapshots to view models and renders them. The
// mapping functions are pure so the presentation contract is testable
// without any rendering machinery.
package view

import (
	"example.com/marketplace/storefront/internal/domain/cart"
	"example.com/marketplace/storefront/internal/domain/category"
	"example.com/marketplace/storefront/internal/domain/order"
	"example.com/marketplace/storefront/internal/domain/product"
	"example.com/marketplace/storefront/internal/domain/stats"
)

const (
	noDescription    = "No description available"
	categoryTagline  = "Browse products"
	addressPreviewAt = 50
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

type Notice struct {
	Severity Severity
	Message  string
}

// Frame is the chrome shared by every page: active nav link, cart badge,
// and the single notification slot.
type Frame struct {
	Active    string
	CartCount int64
	Notice    *Notice
}

type CategoryCard struct {
	ID          int64
	Name        string
	Description string
}

type HomePage struct {
	Frame
	Categories []CategoryCard
	Empty      bool
}

func BuildHome(frame Frame, categories []category.Category) HomePage {
	cards := make([]CategoryCard, 0, len(categories))
	for _, c := range categories {
		desc := c.Description
		if desc == "" {
			desc = categoryTagline
		}
		cards = append(cards, CategoryCard{ID: c.ID, Name: c.Name, Description: desc})
	}
	return HomePage{Frame: frame, Categories: cards, Empty: len(cards) == 0}
}

type ProductCard struct {
	ID          int64
	Name        string
	Description string
	Price       string
	StockLabel  string
	StockClass  string
	CanAdd      bool
}

type CategoryOption struct {
	ID       int64
	Name     string
	Selected bool
}

type PriceOption struct {
	Value    string
	Label    string
	Selected bool
}

type FilterBar struct {
	Search     string
	Categories []CategoryOption
	Prices     []PriceOption
}

type ProductsPage struct {
	Frame
	Products []ProductCard
	Filters  FilterBar
	Empty    bool
}

func BuildProductCard(p product.Product) ProductCard {
	desc := p.Description
	if desc == "" {
		desc = noDescription
	}
	return ProductCard{
		ID:          p.ID,
		Name:        p.Name,
		Description: desc,
		Price:       FormatPrice(p.Price),
		StockLabel:  StockLabel(p.Stock),
		StockClass:  StockClass(p.Stock),
		CanAdd:      TierFor(p.Stock) != TierOutOfStock,
	}
}

func BuildProducts(frame Frame, products []product.Product, filters FilterBar) ProductsPage {
	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, BuildProductCard(p))
	}
	return ProductsPage{Frame: frame, Products: cards, Filters: filters, Empty: len(cards) == 0}
}

// BuildFilterBar derives the category filter options from the categories
// slice, marking the active selections.
func BuildFilterBar(search string, categories []category.Category, selectedCategory int64, selectedPrice string) FilterBar {
	opts := make([]CategoryOption, 0, len(categories))
	for _, c := range categories {
		opts = append(opts, CategoryOption{
			ID:       c.ID,
			Name:     c.Name,
			Selected: c.ID == selectedCategory,
		})
	}

	prices := []PriceOption{
		{Value: "0-50", Label: "$0 - $50"},
		{Value: "50-100", Label: "$50 - $100"},
		{Value: "100-500", Label: "$100 - $500"},
		{Value: "500-", Label: "$500+"},
	}
	for i := range prices {
		prices[i].Selected = prices[i].Value == selectedPrice
	}

	return FilterBar{Search: search, Categories: opts, Prices: prices}
}

type ProductDetail struct {
	ID           int64
	Name         string
	Description  string
	Price        string
	Stock        int64
	StockClass   string
	CategoryName string
	Active       bool
	CanAdd       bool
}

type ProductPage struct {
	Frame
	Product ProductDetail
}

// BuildProductDetail looks the category name up in the categories slice,
// falling back to "Unknown" on a miss. That soft coupling is deliberate:
// the product may reference a deleted category.
func BuildProductDetail(p product.Product, categories []category.Category) ProductDetail {
	desc := p.Description
	if desc == "" {
		desc = noDescription
	}
	return ProductDetail{
		ID:           p.ID,
		Name:         p.Name,
		Description:  desc,
		Price:        FormatPrice(p.Price),
		Stock:        p.Stock,
		StockClass:   StockClass(p.Stock),
		CategoryName: category.NameByID(categories, p.CategoryID),
		Active:       p.IsActive,
		CanAdd:       TierFor(p.Stock) != TierOutOfStock,
	}
}

type CartRow struct {
	ID           int64
	Name         string
	UnitPrice    string
	Quantity     int64
	MaxQuantity  int64
	CanIncrement bool
	Subtotal     string
}

type CartPage struct {
	Frame
	Rows  []CartRow
	Empty bool
	Total string
}

func BuildCart(frame Frame, c cart.Cart) CartPage {
	rows := make([]CartRow, 0, len(c.Items))
	for _, item := range c.Items {
		rows = append(rows, CartRow{
			ID:           item.ID,
			Name:         item.Product.Name,
			UnitPrice:    FormatPrice(item.Product.Price),
			Quantity:     item.Quantity,
			MaxQuantity:  item.Product.Stock,
			CanIncrement: item.Quantity < item.Product.Stock,
			Subtotal:     FormatPrice(item.Subtotal),
		})
	}
	return CartPage{
		Frame: frame,
		Rows:  rows,
		Empty: len(rows) == 0,
		Total: FormatPrice(c.TotalAmount),
	}
}

type OrderRow struct {
	ID              int64
	Date            string
	Status          string
	StatusClass     string
	ShippingPreview string
	Updated         string
	Total           string
}

type OrdersPage struct {
	Frame
	Orders []OrderRow
	Empty  bool
}

func BuildOrderRow(o order.Order) OrderRow {
	preview := o.ShippingAddress
	if len(preview) > addressPreviewAt {
		preview = preview[:addressPreviewAt] + "..."
	}
	return OrderRow{
		ID:              o.ID,
		Date:            FormatDate(o.CreatedAt),
		Status:          o.Status.Display(),
		StatusClass:     "status-" + string(o.Status),
		ShippingPreview: preview,
		Updated:         FormatDate(o.UpdatedAt),
		Total:           FormatPrice(o.TotalAmount),
	}
}

func BuildOrders(frame Frame, orders []order.Order) OrdersPage {
	rows := make([]OrderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, BuildOrderRow(o))
	}
	return OrdersPage{Frame: frame, Orders: rows, Empty: len(rows) == 0}
}

type OrderItemRow struct {
	Name     string
	Quantity int64
	Price    string
	Subtotal string
}

type OrderDetail struct {
	ID              int64
	Status          string
	StatusClass     string
	Date            string
	Updated         string
	ShippingAddress string
	Items           []OrderItemRow
	Total           string
}

type OrderPage struct {
	Frame
	Order OrderDetail
}

func BuildOrderDetail(o order.Order) OrderDetail {
	items := make([]OrderItemRow, 0, len(o.Items))
	for _, item := range o.Items {
		name := item.ProductName
		if name == "" {
			name = FormatProductRef(item.ProductID)
		}
		items = append(items, OrderItemRow{
			Name:     name,
			Quantity: item.Quantity,
			Price:    FormatPrice(item.Price),
			Subtotal: FormatPrice(item.Subtotal),
		})
	}
	return OrderDetail{
		ID:              o.ID,
		Status:          o.Status.Display(),
		StatusClass:     "status-" + string(o.Status),
		Date:            FormatDate(o.CreatedAt),
		Updated:         FormatDate(o.UpdatedAt),
		ShippingAddress: o.ShippingAddress,
		Items:           items,
		Total:           FormatPrice(o.TotalAmount),
	}
}

type ChartBar struct {
	Name      string
	Count     int64
	HeightPct float64
}

type AdminPage struct {
	Frame
	ProductsTotal  int64
	ProductsActive int64
	OutOfStock     int64
	OrdersTotal    int64
	Revenue        string
	Bars           []ChartBar
	NoChart        bool
}

// BuildChart scales each bar against the maximum count. Zero-count
// categories keep a visible floor height.
func BuildChart(counts []stats.CategoryCount) []ChartBar {
	var max int64
	for _, c := range counts {
		if c.Count > max {
			max = c.Count
		}
	}
	bars := make([]ChartBar, 0, len(counts))
	for _, c := range counts {
		height := 5.0
		if c.Count > 0 {
			height = float64(c.Count) / float64(max) * 100
		}
		bars = append(bars, ChartBar{Name: c.Name, Count: c.Count, HeightPct: height})
	}
	return bars
}

func BuildAdmin(frame Frame, s stats.Stats) AdminPage {
	return AdminPage{
		Frame:          frame,
		ProductsTotal:  s.Products.Total,
		ProductsActive: s.Products.Active,
		OutOfStock:     s.Products.OutOfStock,
		OrdersTotal:    s.Orders.Total,
		Revenue:        FormatPrice(s.Orders.Revenue),
		Bars:           BuildChart(s.Categories),
		NoChart:        len(s.Categories) == 0,
	}
}
