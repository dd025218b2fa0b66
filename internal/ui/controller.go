// Package ui drives the storefront: navigation between the five views,
// slice refreshes, and the mutation actions. Every mutation is confirmed by
// the backend before any state changes; the store only ever holds
// authoritative snapshots.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"example.com/marketplace/storefront/internal/api"
	domcart "example.com/marketplace/storefront/internal/domain/cart"
	domorder "example.com/marketplace/storefront/internal/domain/order"
	domproduct "example.com/marketplace/storefront/internal/domain/product"
	"example.com/marketplace/storefront/internal/store"
)

const minShippingAddressLen = 10

type Page string

const (
	PageHome     Page = "home"
	PageProducts Page = "products"
	PageCart     Page = "cart"
	PageOrders   Page = "orders"
	PageAdmin    Page = "admin"
)

func (p Page) Valid() bool {
	switch p {
	case PageHome, PageProducts, PageCart, PageOrders, PageAdmin:
		return true
	default:
		return false
	}
}

func ParsePage(s string) (Page, bool) {
	p := Page(s)
	return p, p.Valid()
}

// Controller owns the state store and the notification slot, and is the
// only writer of both.
type Controller struct {
	gw      Gateway
	store   *store.Store
	notices *Notifier
	log     *slog.Logger

	mu      sync.Mutex
	page    Page
	filter  domproduct.ListFilter
	price   string
	baseCtx context.Context

	searchDebounce *Debouncer
}

type Option func(*Controller)

func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) { c.log = log }
}

func WithNoticeTTL(ttl time.Duration) Option {
	return func(c *Controller) { c.notices = NewNotifier(ttl) }
}

func WithSearchDebounce(delay time.Duration) Option {
	return func(c *Controller) { c.searchDebounce = NewDebouncer(delay) }
}

func New(gw Gateway, st *store.Store, opts ...Option) *Controller {
	c := &Controller{
		gw:             gw,
		store:          st,
		notices:        NewNotifier(defaultNoticeTTL),
		log:            slog.Default(),
		page:           PageHome,
		baseCtx:        context.Background(),
		searchDebounce: NewDebouncer(defaultSearchDebounce),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Store() *store.Store { return c.store }

func (c *Controller) Notices() *Notifier { return c.notices }

func (c *Controller) CurrentPage() Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Start issues the bootstrap signal and eagerly fetches all six slices, so
// badge counts and filter options are populated before any navigation.
// Individual fetch failures are surfaced at the refresh sites and do not
// abort startup.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	c.baseCtx = ctx
	c.mu.Unlock()

	if err := c.gw.Init(ctx); err != nil {
		c.log.Warn("bootstrap signal failed", "error", err)
	}

	var g errgroup.Group
	for _, refresh := range []func(context.Context) error{
		c.RefreshUser,
		c.RefreshCategories,
		c.RefreshProducts,
		c.RefreshCart,
		c.RefreshOrders,
		c.RefreshStats,
	} {
		g.Go(func() error {
			_ = refresh(ctx)
			return nil
		})
	}
	return g.Wait()
}

// Navigate makes page the single active view and refreshes the slice that
// backs it. The home view renders from the categories slice fetched at
// startup and needs no refresh of its own.
func (c *Controller) Navigate(ctx context.Context, page Page) error {
	if !page.Valid() {
		return fmt.Errorf("unknown page %q", page)
	}
	c.mu.Lock()
	c.page = page
	c.mu.Unlock()

	switch page {
	case PageProducts:
		return c.RefreshProducts(ctx)
	case PageCart:
		return c.RefreshCart(ctx)
	case PageOrders:
		return c.RefreshOrders(ctx)
	case PageAdmin:
		return c.RefreshStats(ctx)
	}
	return nil
}

func (c *Controller) RefreshUser(ctx context.Context) error {
	token := c.store.User.Begin()
	u, err := c.gw.CurrentUser(ctx)
	if err != nil {
		c.fail(err, "load user", "Error loading user")
		return err
	}
	c.store.User.Commit(token, u)
	return nil
}

func (c *Controller) RefreshCategories(ctx context.Context) error {
	token := c.store.Categories.Begin()
	categories, err := c.gw.Categories(ctx)
	if err != nil {
		c.fail(err, "load categories", "Error loading categories")
		return err
	}
	c.store.Categories.Commit(token, categories)
	return nil
}

// RefreshProducts queries with the current filter controls. A completion
// that was overtaken by a later fetch is dropped by the slice's version
// guard, so rapid filter changes cannot regress the grid.
func (c *Controller) RefreshProducts(ctx context.Context) error {
	c.mu.Lock()
	filter := c.filter
	c.mu.Unlock()

	token := c.store.Products.Begin()
	products, err := c.gw.Products(ctx, filter)
	if err != nil {
		c.fail(err, "load products", "Error loading products")
		return err
	}
	if !c.store.Products.Commit(token, products) {
		c.log.Debug("dropped stale products snapshot")
	}
	return nil
}

func (c *Controller) RefreshCart(ctx context.Context) error {
	token := c.store.Cart.Begin()
	fetched, err := c.gw.Cart(ctx)
	if err != nil {
		c.fail(err, "load cart", "Error loading cart")
		return err
	}
	c.store.Cart.Commit(token, fetched)
	return nil
}

func (c *Controller) RefreshOrders(ctx context.Context) error {
	token := c.store.Orders.Begin()
	orders, err := c.gw.Orders(ctx)
	if err != nil {
		c.fail(err, "load orders", "Error loading orders")
		return err
	}
	c.store.Orders.Commit(token, orders)
	return nil
}

func (c *Controller) RefreshStats(ctx context.Context) error {
	token := c.store.Stats.Begin()
	s, err := c.gw.Stats(ctx)
	if err != nil {
		c.fail(err, "load stats", "Error loading statistics")
		return err
	}
	c.store.Stats.Commit(token, s)
	return nil
}

// SearchChanged records the new search text and schedules a debounced
// product refresh, collapsing a typing burst into one request for the
// final query.
func (c *Controller) SearchChanged(text string) {
	c.mu.Lock()
	c.filter.Search = text
	ctx := c.baseCtx
	c.mu.Unlock()

	c.searchDebounce.Trigger(func() {
		_ = c.RefreshProducts(ctx)
	})
}

func (c *Controller) SetCategoryFilter(ctx context.Context, id *int64) error {
	c.mu.Lock()
	c.filter.CategoryID = id
	c.mu.Unlock()
	return c.RefreshProducts(ctx)
}

// SetPriceRange accepts the filter control's "min-max" token; an open upper
// bound is written as "500-". An empty token clears the range.
func (c *Controller) SetPriceRange(ctx context.Context, priceRange string) error {
	min, max, err := parsePriceRange(priceRange)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.price = priceRange
	c.filter.MinPrice = min
	c.filter.MaxPrice = max
	c.mu.Unlock()
	return c.RefreshProducts(ctx)
}

// SetFilters replaces all filter controls at once without refreshing; the
// caller is expected to navigate to the products view next, which fetches
// exactly once.
func (c *Controller) SetFilters(search string, categoryID *int64, priceRange string) error {
	min, max, err := parsePriceRange(priceRange)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.filter = domproduct.ListFilter{
		Search:     search,
		CategoryID: categoryID,
		MinPrice:   min,
		MaxPrice:   max,
	}
	c.price = priceRange
	c.mu.Unlock()
	return nil
}

// Filter returns the current filter controls for rendering.
func (c *Controller) Filter() (domproduct.ListFilter, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter, c.price
}

func parsePriceRange(priceRange string) (min, max *float64, err error) {
	if priceRange == "" {
		return nil, nil, nil
	}
	lo, hi, found := strings.Cut(priceRange, "-")
	if !found {
		return nil, nil, fmt.Errorf("malformed price range %q", priceRange)
	}
	minVal := 0.0
	if lo != "" {
		minVal, err = strconv.ParseFloat(lo, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("malformed price range %q", priceRange)
		}
	}
	min = &minVal
	if hi != "" {
		maxVal, parseErr := strconv.ParseFloat(hi, 64)
		if parseErr != nil {
			return nil, nil, fmt.Errorf("malformed price range %q", priceRange)
		}
		max = &maxVal
	}
	return min, max, nil
}

// AddToCart follows the mutation protocol: request, then on confirmation a
// full cart refetch. The local snapshot is never touched directly.
func (c *Controller) AddToCart(ctx context.Context, productID, quantity int64) error {
	if err := c.gw.AddToCart(ctx, productID, quantity); err != nil {
		c.fail(err, "add to cart", "Error adding to cart")
		return err
	}
	c.notices.Show(SeveritySuccess, "Product added to cart!")
	return c.RefreshCart(ctx)
}

// UpdateQuantity forwards the requested quantity verbatim, including zero
// or negative values; interpreting those is the backend's contract.
func (c *Controller) UpdateQuantity(ctx context.Context, itemID, quantity int64) error {
	if err := c.gw.UpdateCartItem(ctx, itemID, quantity); err != nil {
		c.fail(err, "update cart item", "Error updating cart")
		return err
	}
	return c.RefreshCart(ctx)
}

func (c *Controller) RemoveItem(ctx context.Context, itemID int64) error {
	if err := c.gw.RemoveCartItem(ctx, itemID); err != nil {
		c.fail(err, "remove cart item", "Error removing from cart")
		return err
	}
	c.notices.Show(SeveritySuccess, "Item removed from cart")
	return c.RefreshCart(ctx)
}

// ClearCart is a no-op unless the caller passes the user's explicit
// confirmation.
func (c *Controller) ClearCart(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return nil
	}
	if err := c.gw.ClearCart(ctx); err != nil {
		c.fail(err, "clear cart", "Error clearing cart")
		return err
	}
	c.notices.Show(SeveritySuccess, "Cart cleared")
	return c.RefreshCart(ctx)
}

// Checkout validates the preconditions client-side, places the order, and
// on success moves to the orders view and refetches both affected slices.
func (c *Controller) Checkout(ctx context.Context, shippingAddress string) error {
	addr := strings.TrimSpace(shippingAddress)
	if len(addr) < minShippingAddressLen {
		c.notices.Show(SeverityError, "Please enter a valid shipping address (minimum 10 characters)")
		return domorder.ErrAddressTooShort
	}
	if c.store.Cart.Get().IsEmpty() {
		c.notices.Show(SeverityError, "Your cart is empty")
		return domcart.ErrEmptyCart
	}

	if err := c.gw.PlaceOrder(ctx, addr); err != nil {
		c.fail(err, "checkout", "Error placing order")
		return err
	}

	c.notices.Show(SeveritySuccess, "Order placed successfully!")
	if err := c.Navigate(ctx, PageOrders); err != nil {
		return err
	}
	return c.RefreshCart(ctx)
}

// Product fetches a single product for the detail view.
func (c *Controller) Product(ctx context.Context, id int64) (domproduct.Product, error) {
	p, err := c.gw.Product(ctx, id)
	if err != nil {
		c.fail(err, "load product", "Error loading product")
		return domproduct.Product{}, err
	}
	return p, nil
}

// Order fetches a single order for the detail view.
func (c *Controller) Order(ctx context.Context, id int64) (domorder.Order, error) {
	o, err := c.gw.Order(ctx, id)
	if err != nil {
		c.fail(err, "load order", "Error loading order")
		return domorder.Order{}, err
	}
	return o, nil
}

func (c *Controller) fail(err error, op, fallback string) {
	c.log.Error("storefront action failed", "op", op, "error", err)
	c.notices.Show(SeverityError, api.MessageFrom(err, fallback))
}
