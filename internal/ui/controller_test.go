package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/marketplace/storefront/internal/api"
	domcart "example.com/marketplace/storefront/internal/domain/cart"
	domcategory "example.com/marketplace/storefront/internal/domain/category"
	domorder "example.com/marketplace/storefront/internal/domain/order"
	domproduct "example.com/marketplace/storefront/internal/domain/product"
	domstats "example.com/marketplace/storefront/internal/domain/stats"
	domuser "example.com/marketplace/storefront/internal/domain/user"
	"example.com/marketplace/storefront/internal/store"
)

type fakeGateway struct {
	mu sync.Mutex

	user       domuser.User
	categories []domcategory.Category
	products   []domproduct.Product
	cart       domcart.Cart
	orders     []domorder.Order
	stats      domstats.Stats

	addErr    error
	updateErr error
	placeErr  error

	initCalls    int
	cartCalls    int
	productCalls int
	lastFilter   domproduct.ListFilter
	lastUpdateID int64
	lastUpdateQ  int64
	addCalls     int
	clearCalls   int
	placeCalls   int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		user: domuser.User{ID: 1, Username: "demo_user"},
		categories: []domcategory.Category{
			{ID: 1, Name: "Electronics"},
			{ID: 4, Name: "Home & Kitchen"},
		},
		products: []domproduct.Product{
			{ID: 42, Name: "Blender", Price: 49.99, Stock: 60, CategoryID: 4, IsActive: true},
			{ID: 43, Name: "Laptop Pro", Price: 1299.99, Stock: 25, CategoryID: 1, IsActive: true},
		},
		stats: domstats.Stats{Products: domstats.ProductStats{Total: 2, Active: 2}},
	}
}

func (f *fakeGateway) Init(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initCalls++
	return nil
}

func (f *fakeGateway) CurrentUser(ctx context.Context) (domuser.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user, nil
}

func (f *fakeGateway) Categories(ctx context.Context) ([]domcategory.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domcategory.Category(nil), f.categories...), nil
}

func (f *fakeGateway) Products(ctx context.Context, filter domproduct.ListFilter) ([]domproduct.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.productCalls++
	f.lastFilter = filter
	return append([]domproduct.Product(nil), f.products...), nil
}

func (f *fakeGateway) Product(ctx context.Context, id int64) (domproduct.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domproduct.Product{}, &api.Error{Status: 404, Message: "Product not found"}
}

func (f *fakeGateway) Cart(ctx context.Context) (domcart.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cartCalls++
	cloned := f.cart
	cloned.Items = append([]domcart.Item(nil), f.cart.Items...)
	return cloned, nil
}

func (f *fakeGateway) AddToCart(ctx context.Context, productID, quantity int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls++
	if f.addErr != nil {
		return f.addErr
	}
	var prod domproduct.Product
	for _, p := range f.products {
		if p.ID == productID {
			prod = p
		}
	}
	f.cart.Items = append(f.cart.Items, domcart.Item{
		ID:       int64(len(f.cart.Items) + 1),
		Quantity: quantity,
		Product:  prod,
		Subtotal: prod.Price * float64(quantity),
	})
	f.cart.ItemsCount += quantity
	f.cart.TotalAmount += prod.Price * float64(quantity)
	return nil
}

func (f *fakeGateway) UpdateCartItem(ctx context.Context, itemID, quantity int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastUpdateID = itemID
	f.lastUpdateQ = quantity
	return f.updateErr
}

func (f *fakeGateway) RemoveCartItem(ctx context.Context, itemID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.cart.Items[:0]
	for _, item := range f.cart.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	f.cart.Items = kept
	return nil
}

func (f *fakeGateway) ClearCart(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearCalls++
	f.cart = domcart.Cart{}
	return nil
}

func (f *fakeGateway) Orders(ctx context.Context) ([]domorder.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domorder.Order(nil), f.orders...), nil
}

func (f *fakeGateway) Order(ctx context.Context, id int64) (domorder.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return domorder.Order{}, &api.Error{Status: 404, Message: "Order not found"}
}

func (f *fakeGateway) PlaceOrder(ctx context.Context, shippingAddress string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.placeCalls++
	if f.placeErr != nil {
		return f.placeErr
	}
	items := make([]domorder.Item, 0, len(f.cart.Items))
	for _, item := range f.cart.Items {
		items = append(items, domorder.Item{
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			Price:       item.Product.Price,
			Subtotal:    item.Subtotal,
		})
	}
	f.orders = append(f.orders, domorder.Order{
		ID:              int64(len(f.orders) + 1),
		Status:          domorder.StatusPending,
		ShippingAddress: shippingAddress,
		TotalAmount:     f.cart.TotalAmount,
		Items:           items,
	})
	f.cart = domcart.Cart{}
	return nil
}

func (f *fakeGateway) Stats(ctx context.Context) (domstats.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats, nil
}

func newTestController(t *testing.T, gw Gateway) *Controller {
	t.Helper()
	return New(gw, store.New(),
		WithNoticeTTL(time.Minute),
		WithSearchDebounce(20*time.Millisecond),
	)
}

func TestStart_EagerlyFetchesAllSlices(t *testing.T) {
	gw := newFakeGateway()
	ctrl := newTestController(t, gw)

	require.NoError(t, ctrl.Start(context.Background()))

	st := ctrl.Store()
	require.Equal(t, int64(1), st.User.Get().ID)
	require.Len(t, st.Categories.Get(), 2)
	require.Len(t, st.Products.Get(), 2)
	require.Len(t, st.Orders.Get(), 0)
	require.Equal(t, int64(2), st.Stats.Get().Products.Total)
	require.Equal(t, 1, gw.initCalls)
	require.Equal(t, PageHome, ctrl.CurrentPage())
}

func TestAddToCart_SuccessRefetchesAuthoritativeCart(t *testing.T) {
	gw := newFakeGateway()
	ctrl := newTestController(t, gw)
	ctx := context.Background()

	require.NoError(t, ctrl.AddToCart(ctx, 42, 1))

	got := ctrl.Store().Cart.Get()
	require.Len(t, got.Items, 1)
	require.Equal(t, int64(42), got.Items[0].Product.ID)
	require.Equal(t, int64(1), got.Items[0].Quantity)

	notice := ctrl.Notices().Current()
	require.NotNil(t, notice)
	require.Equal(t, SeveritySuccess, notice.Severity)
	require.Equal(t, "Product added to cart!", notice.Message)
}

func TestAddToCart_FailureLeavesCartUntouchedAndNotifiesOnce(t *testing.T) {
	gw := newFakeGateway()
	ctrl := newTestController(t, gw)
	ctx := context.Background()

	require.NoError(t, ctrl.AddToCart(ctx, 42, 2))
	before := ctrl.Store().Cart.Get()
	beforeVersion := ctrl.Store().Cart.Version()
	cartFetches := gw.cartCalls
	ctrl.Notices().Dismiss()

	gw.addErr = &api.Error{Message: "Insufficient stock"}
	err := ctrl.AddToCart(ctx, 43, 999)
	require.Error(t, err)

	// The slice is byte-identical: same snapshot, same version, and no
	// refetch was issued.
	require.Equal(t, before, ctrl.Store().Cart.Get())
	require.Equal(t, beforeVersion, ctrl.Store().Cart.Version())
	require.Equal(t, cartFetches, gw.cartCalls)

	notice := ctrl.Notices().Current()
	require.NotNil(t, notice)
	require.Equal(t, SeverityError, notice.Severity)
	require.Equal(t, "Insufficient stock", notice.Message)
}

func TestAddToCart_FailureWithoutMessageUsesFallback(t *testing.T) {
	gw := newFakeGateway()
	gw.addErr = &api.Error{Status: 500}
	ctrl := newTestController(t, gw)

	require.Error(t, ctrl.AddToCart(context.Background(), 42, 1))

	notice := ctrl.Notices().Current()
	require.NotNil(t, notice)
	require.Equal(t, "Error adding to cart", notice.Message)
}

func TestUpdateQuantity_ForwardsZeroVerbatim(t *testing.T) {
	gw := newFakeGateway()
	ctrl := newTestController(t, gw)

	require.NoError(t, ctrl.UpdateQuantity(context.Background(), 7, 0))
	require.Equal(t, int64(7), gw.lastUpdateID)
	require.Zero(t, gw.lastUpdateQ)
}

func TestClearCart_RequiresConfirmation(t *testing.T) {
	gw := newFakeGateway()
	ctrl := newTestController(t, gw)
	ctx := context.Background()

	require.NoError(t, ctrl.ClearCart(ctx, false))
	require.Zero(t, gw.clearCalls)
	require.Nil(t, ctrl.Notices().Current())

	require.NoError(t, ctrl.ClearCart(ctx, true))
	require.Equal(t, 1, gw.clearCalls)
	require.Equal(t, "Cart cleared", ctrl.Notices().Current().Message)
}

func TestCheckout_ShortAddressIssuesNoRequest(t *testing.T) {
	gw := newFakeGateway()
	ctrl := newTestController(t, gw)

	err := ctrl.Checkout(context.Background(), "123456789")
	require.ErrorIs(t, err, domorder.ErrAddressTooShort)
	require.Zero(t, gw.placeCalls)

	notice := ctrl.Notices().Current()
	require.NotNil(t, notice)
	require.Equal(t, SeverityError, notice.Severity)
}

func TestCheckout_EmptyCartIssuesNoRequest(t *testing.T) {
	gw := newFakeGateway()
	ctrl := newTestController(t, gw)

	err := ctrl.Checkout(context.Background(), "42 Galaxy Way, Neptune")
	require.ErrorIs(t, err, domcart.ErrEmptyCart)
	require.Zero(t, gw.placeCalls)
}

func TestCheckout_SuccessNavigatesToOrdersAndRefetches(t *testing.T) {
	gw := newFakeGateway()
	ctrl := newTestController(t, gw)
	ctx := context.Background()

	require.NoError(t, ctrl.AddToCart(ctx, 42, 2))
	require.NoError(t, ctrl.Checkout(ctx, "42 Galaxy Way, Neptune"))

	require.Equal(t, PageOrders, ctrl.CurrentPage())

	orders := ctrl.Store().Orders.Get()
	require.Len(t, orders, 1)
	require.Equal(t, "42 Galaxy Way, Neptune", orders[0].ShippingAddress)
	require.Len(t, orders[0].Items, 1)
	require.Equal(t, int64(42), orders[0].Items[0].ProductID)

	require.True(t, ctrl.Store().Cart.Get().IsEmpty())
	require.Equal(t, "Order placed successfully!", ctrl.Notices().Current().Message)
}

func TestSearchChanged_DebouncesToSingleRequest(t *testing.T) {
	gw := newFakeGateway()
	ctrl := newTestController(t, gw)

	for _, text := range []string{"p", "ph", "pho", "phon", "phone"} {
		ctrl.SearchChanged(text)
	}

	require.Eventually(t, func() bool {
		gw.mu.Lock()
		defer gw.mu.Unlock()
		return gw.productCalls == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	gw.mu.Lock()
	defer gw.mu.Unlock()
	require.Equal(t, 1, gw.productCalls)
	require.Equal(t, "phone", gw.lastFilter.Search)
}

func TestNavigate_RefreshesThePageSlice(t *testing.T) {
	gw := newFakeGateway()
	ctrl := newTestController(t, gw)
	ctx := context.Background()

	require.NoError(t, ctrl.Navigate(ctx, PageProducts))
	require.Equal(t, PageProducts, ctrl.CurrentPage())
	require.Len(t, ctrl.Store().Products.Get(), 2)

	require.NoError(t, ctrl.Navigate(ctx, PageAdmin))
	require.Equal(t, int64(2), ctrl.Store().Stats.Get().Products.Total)

	require.Error(t, ctrl.Navigate(ctx, Page("checkout")))
}

func TestSetPriceRange_ParsesControlToken(t *testing.T) {
	gw := newFakeGateway()
	ctrl := newTestController(t, gw)
	ctx := context.Background()

	require.NoError(t, ctrl.SetPriceRange(ctx, "50-100"))
	filter, raw := ctrl.Filter()
	require.Equal(t, "50-100", raw)
	require.Equal(t, 50.0, *filter.MinPrice)
	require.Equal(t, 100.0, *filter.MaxPrice)

	require.NoError(t, ctrl.SetPriceRange(ctx, "500-"))
	filter, _ = ctrl.Filter()
	require.Equal(t, 500.0, *filter.MinPrice)
	require.Nil(t, filter.MaxPrice)

	require.NoError(t, ctrl.SetPriceRange(ctx, ""))
	filter, _ = ctrl.Filter()
	require.Nil(t, filter.MinPrice)
	require.Nil(t, filter.MaxPrice)

	require.Error(t, ctrl.SetPriceRange(ctx, "cheap"))
}
