package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/marketplace/storefront/internal/domain/cart"
	"example.com/marketplace/storefront/internal/domain/category"
	"example.com/marketplace/storefront/internal/domain/order"
	"example.com/marketplace/storefront/internal/domain/product"
	"example.com/marketplace/storefront/internal/domain/stats"
)

func TestBuildProductCard_DisablesAddWhenOutOfStock(t *testing.T) {
	card := BuildProductCard(product.Product{ID: 1, Name: "Laptop", Stock: 0, Price: 1299.99})
	require.False(t, card.CanAdd)
	require.Equal(t, "Out of Stock", card.StockLabel)

	card = BuildProductCard(product.Product{ID: 2, Name: "Jeans", Stock: 3, Price: 59.99})
	require.True(t, card.CanAdd)
	require.Equal(t, "Low Stock (3 left)", card.StockLabel)
}

func TestBuildProductCard_DescriptionFallback(t *testing.T) {
	card := BuildProductCard(product.Product{ID: 1, Name: "Blender"})
	require.Equal(t, "No description available", card.Description)
}

func TestBuildProductDetail_UnknownCategoryFallback(t *testing.T) {
	categories := []category.Category{{ID: 1, Name: "Electronics"}}

	detail := BuildProductDetail(product.Product{ID: 5, Name: "Phone", CategoryID: 1}, categories)
	require.Equal(t, "Electronics", detail.CategoryName)

	// The category was deleted server-side; the lookup stays soft.
	detail = BuildProductDetail(product.Product{ID: 6, Name: "Relic", CategoryID: 99}, categories)
	require.Equal(t, "Unknown", detail.CategoryName)

	detail = BuildProductDetail(product.Product{ID: 7, Name: "Orphan", CategoryID: 1}, nil)
	require.Equal(t, "Unknown", detail.CategoryName)
}

func TestBuildCart_EmptyState(t *testing.T) {
	page := BuildCart(Frame{}, cart.Cart{})
	require.True(t, page.Empty)
	require.Empty(t, page.Rows)
	require.Equal(t, "$0.00", page.Total)
}

func TestBuildCart_UsesServerTotals(t *testing.T) {
	c := cart.Cart{
		Items: []cart.Item{
			{ID: 7, Quantity: 2, Subtotal: 49.98,
				Product: product.Product{ID: 42, Name: "Blender", Price: 24.99, Stock: 60}},
		},
		ItemsCount:  2,
		TotalAmount: 49.98,
	}
	page := BuildCart(Frame{}, c)
	require.False(t, page.Empty)
	require.Len(t, page.Rows, 1)
	require.Equal(t, "$49.98", page.Rows[0].Subtotal)
	require.Equal(t, "$49.98", page.Total)
	require.True(t, page.Rows[0].CanIncrement)
}

func TestBuildCart_IncrementBlockedAtStockLimit(t *testing.T) {
	c := cart.Cart{
		Items: []cart.Item{
			{ID: 1, Quantity: 5, Product: product.Product{ID: 2, Name: "T-Shirt", Stock: 5}},
		},
	}
	page := BuildCart(Frame{}, c)
	require.False(t, page.Rows[0].CanIncrement)
	require.Equal(t, int64(5), page.Rows[0].MaxQuantity)
}

func TestBuildOrderRow_TruncatesShippingAndUppercasesStatus(t *testing.T) {
	long := strings.Repeat("a", 80)
	row := BuildOrderRow(order.Order{ID: 3, Status: "pending", ShippingAddress: long, TotalAmount: 12})
	require.Equal(t, strings.Repeat("a", 50)+"...", row.ShippingPreview)
	require.Equal(t, "PENDING", row.Status)
	require.Equal(t, "status-pending", row.StatusClass)
	require.Equal(t, "N/A", row.Updated)
	require.Equal(t, "$12.00", row.Total)
}

func TestBuildOrderDetail_ProductNameFallback(t *testing.T) {
	detail := BuildOrderDetail(order.Order{
		ID: 9,
		Items: []order.Item{
			{ProductID: 42, ProductName: "", Quantity: 1, Price: 10, Subtotal: 10},
			{ProductID: 43, ProductName: "Jeans", Quantity: 2, Price: 59.99, Subtotal: 119.98},
		},
	})
	require.Equal(t, "Product #42", detail.Items[0].Name)
	require.Equal(t, "Jeans", detail.Items[1].Name)
}

func TestBuildChart_ScalesAgainstMax(t *testing.T) {
	bars := BuildChart([]stats.CategoryCount{
		{Name: "Electronics", Count: 8},
		{Name: "Books", Count: 2},
		{Name: "Empty", Count: 0},
	})
	require.Len(t, bars, 3)
	require.Equal(t, 100.0, bars[0].HeightPct)
	require.Equal(t, 25.0, bars[1].HeightPct)
	// Zero counts keep a visible floor.
	require.Equal(t, 5.0, bars[2].HeightPct)
}

func TestBuildAdmin_EmptyChart(t *testing.T) {
	page := BuildAdmin(Frame{}, stats.Stats{})
	require.True(t, page.NoChart)
	require.Equal(t, "$0.00", page.Revenue)
}

func TestBuildHome_CategoryTaglineFallback(t *testing.T) {
	page := BuildHome(Frame{}, []category.Category{{ID: 1, Name: "Books"}})
	require.Equal(t, "Browse products", page.Categories[0].Description)

	empty := BuildHome(Frame{}, nil)
	require.True(t, empty.Empty)
}

func TestBuildFilterBar_MarksSelections(t *testing.T) {
	bar := BuildFilterBar("phone", []category.Category{
		{ID: 1, Name: "Electronics"},
		{ID: 2, Name: "Clothing"},
	}, 2, "50-100")

	require.Equal(t, "phone", bar.Search)
	require.False(t, bar.Categories[0].Selected)
	require.True(t, bar.Categories[1].Selected)

	var selected []string
	for _, p := range bar.Prices {
		if p.Selected {
			selected = append(selected, p.Value)
		}
	}
	require.Equal(t, []string{"50-100"}, selected)
}
