package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	domcart "example.com/marketplace/storefront/internal/domain/cart"
	domcategory "example.com/marketplace/storefront/internal/domain/category"
	domorder "example.com/marketplace/storefront/internal/domain/order"
	domproduct "example.com/marketplace/storefront/internal/domain/product"
	domstats "example.com/marketplace/storefront/internal/domain/stats"
	domuser "example.com/marketplace/storefront/internal/domain/user"
)

const defaultProductLimit = 100

// Client wraps the marketplace REST API. All methods return either decoded
// payloads or an error; on error the caller's previously fetched state is
// never touched.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 15 * time.Second},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// statusResponse is the envelope every write endpoint returns.
type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// errorBody covers both envelope styles the backend uses for error
// statuses.
type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		msg := eb.Message
		if msg == "" {
			msg = eb.Detail
		}
		c.log.Warn("api request failed",
			"method", method, "path", path, "status", resp.StatusCode, "message", msg)
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}

// mutate runs a write request and turns a success:false envelope into an
// *Error carrying the backend message verbatim.
func (c *Client) mutate(ctx context.Context, method, path string, query url.Values, body any) error {
	var sr statusResponse
	if err := c.do(ctx, method, path, query, body, &sr); err != nil {
		return err
	}
	if !sr.Success {
		c.log.Warn("api mutation rejected", "method", method, "path", path, "message", sr.Message)
		return &Error{Message: sr.Message}
	}
	return nil
}

// Init signals the backend to bootstrap its demo data set.
func (c *Client) Init(ctx context.Context) error {
	return c.mutate(ctx, http.MethodGet, "/init", nil, nil)
}

func (c *Client) CurrentUser(ctx context.Context) (domuser.User, error) {
	var u domuser.User
	err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &u)
	return u, err
}

func (c *Client) Categories(ctx context.Context) ([]domcategory.Category, error) {
	var resp struct {
		Categories []domcategory.Category `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/categories/", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

func (c *Client) Products(ctx context.Context, filter domproduct.ListFilter) ([]domproduct.Product, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultProductLimit
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.CategoryID != nil {
		q.Set("category_id", strconv.FormatInt(*filter.CategoryID, 10))
	}
	if filter.MinPrice != nil {
		q.Set("min_price", strconv.FormatFloat(*filter.MinPrice, 'f', -1, 64))
	}
	if filter.MaxPrice != nil {
		q.Set("max_price", strconv.FormatFloat(*filter.MaxPrice, 'f', -1, 64))
	}

	var resp struct {
		Products []domproduct.Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "/products/", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

func (c *Client) Product(ctx context.Context, id int64) (domproduct.Product, error) {
	var p domproduct.Product
	err := c.do(ctx, http.MethodGet, "/products/"+strconv.FormatInt(id, 10), nil, nil, &p)
	return p, err
}

func (c *Client) Cart(ctx context.Context) (domcart.Cart, error) {
	var cart domcart.Cart
	err := c.do(ctx, http.MethodGet, "/cart/", nil, nil, &cart)
	return cart, err
}

type addToCartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

func (c *Client) AddToCart(ctx context.Context, productID, quantity int64) error {
	return c.mutate(ctx, http.MethodPost, "/cart/", nil, addToCartRequest{
		ProductID: productID,
		Quantity:  quantity,
	})
}

// UpdateCartItem forwards any quantity as-is, including zero or negative.
// The backend decides whether that means removal or a rejection.
func (c *Client) UpdateCartItem(ctx context.Context, itemID, quantity int64) error {
	q := url.Values{}
	q.Set("quantity", strconv.FormatInt(quantity, 10))
	return c.mutate(ctx, http.MethodPut, "/cart/"+strconv.FormatInt(itemID, 10), q, nil)
}

func (c *Client) RemoveCartItem(ctx context.Context, itemID int64) error {
	return c.mutate(ctx, http.MethodDelete, "/cart/"+strconv.FormatInt(itemID, 10), nil, nil)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.mutate(ctx, http.MethodDelete, "/cart/", nil, nil)
}

func (c *Client) Orders(ctx context.Context) ([]domorder.Order, error) {
	var resp struct {
		Orders []domorder.Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/orders/", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

func (c *Client) Order(ctx context.Context, id int64) (domorder.Order, error) {
	var o domorder.Order
	err := c.do(ctx, http.MethodGet, "/orders/"+strconv.FormatInt(id, 10), nil, nil, &o)
	return o, err
}

type placeOrderRequest struct {
	ShippingAddress string `json:"shipping_address"`
}

func (c *Client) PlaceOrder(ctx context.Context, shippingAddress string) error {
	return c.mutate(ctx, http.MethodPost, "/orders/", nil, placeOrderRequest{
		ShippingAddress: shippingAddress,
	})
}

func (c *Client) Stats(ctx context.Context) (domstats.Stats, error) {
	var s domstats.Stats
	err := c.do(ctx, http.MethodGet, "/stats/", nil, nil, &s)
	return s, err
}
