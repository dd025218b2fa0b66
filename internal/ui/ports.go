package ui

import (
	"context"

	"example.com/marketplace/storefront/internal/domain/cart"
	"example.com/marketplace/storefront/internal/domain/category"
	"example.com/marketplace/storefront/internal/domain/order"
	"example.com/marketplace/storefront/internal/domain/product"
	"example.com/marketplace/storefront/internal/domain/stats"
	"example.com/marketplace/storefront/internal/domain/user"
)

// Gateway is the backend surface the controller depends on. *api.Client
// satisfies it; tests substitute fakes.
type Gateway interface {
	Init(ctx context.Context) error
	CurrentUser(ctx context.Context) (user.User, error)
	Categories(ctx context.Context) ([]category.Category, error)
	Products(ctx context.Context, filter product.ListFilter) ([]product.Product, error)
	Product(ctx context.Context, id int64) (product.Product, error)
	Cart(ctx context.Context) (cart.Cart, error)
	AddToCart(ctx context.Context, productID, quantity int64) error
	UpdateCartItem(ctx context.Context, itemID, quantity int64) error
	RemoveCartItem(ctx context.Context, itemID int64) error
	ClearCart(ctx context.Context) error
	Orders(ctx context.Context) ([]order.Order, error)
	Order(ctx context.Context, id int64) (order.Order, error)
	PlaceOrder(ctx context.Context, shippingAddress string) error
	Stats(ctx context.Context) (stats.Stats, error)
}
