// Package web exposes the storefront over HTTP: it renders the five views
// server-side and translates form posts into controller actions.
package web

import (
	"embed"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"example.com/marketplace/storefront/internal/ui"
	"example.com/marketplace/storefront/internal/view"
)

//go:embed static
var staticFS embed.FS

type Server struct {
	ctrl      *ui.Controller
	render    *view.Renderer
	validator *validator.Validate
	log       *slog.Logger
}

func NewServer(ctrl *ui.Controller, render *view.Renderer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		ctrl:      ctrl,
		render:    render,
		validator: validator.New(),
		log:       log,
	}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Handle("/static/*", http.FileServer(http.FS(staticFS)))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/home", http.StatusFound)
	})
	r.Get("/home", s.handlePage(ui.PageHome))
	r.Get("/products", s.handleProducts)
	r.Get("/products/{id}", s.handleProductDetail)
	r.Get("/cart", s.handlePage(ui.PageCart))
	r.Get("/orders", s.handlePage(ui.PageOrders))
	r.Get("/orders/{id}", s.handleOrderDetail)
	r.Get("/admin", s.handlePage(ui.PageAdmin))

	r.Post("/cart/items", s.handleAddToCart)
	r.Post("/cart/items/{id}/quantity", s.handleUpdateQuantity)
	r.Post("/cart/items/{id}/remove", s.handleRemoveItem)
	r.Post("/cart/clear", s.handleClearCart)
	r.Post("/checkout", s.handleCheckout)
	r.Post("/admin/refresh", s.handleRefreshStats)
	r.Post("/notice/dismiss", s.handleDismissNotice)

	return r
}

func (s *Server) frame(active ui.Page) view.Frame {
	st := s.ctrl.Store()
	return view.Frame{
		Active:    string(active),
		CartCount: st.Cart.Get().ItemsCount,
		Notice:    mapNotice(s.ctrl.Notices().Current()),
	}
}

func mapNotice(n *ui.Notice) *view.Notice {
	if n == nil {
		return nil
	}
	return &view.Notice{Severity: view.Severity(n.Severity), Message: n.Message}
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, page ui.Page) {
	st := s.ctrl.Store()
	frame := s.frame(page)

	var (
		name string
		data any
	)
	switch page {
	case ui.PageHome:
		name = "home"
		data = view.BuildHome(frame, st.Categories.Get())
	case ui.PageProducts:
		filter, price := s.ctrl.Filter()
		var selected int64
		if filter.CategoryID != nil {
			selected = *filter.CategoryID
		}
		bar := view.BuildFilterBar(filter.Search, st.Categories.Get(), selected, price)
		name = "products"
		data = view.BuildProducts(frame, st.Products.Get(), bar)
	case ui.PageCart:
		name = "cart"
		data = view.BuildCart(frame, st.Cart.Get())
	case ui.PageOrders:
		name = "orders"
		data = view.BuildOrders(frame, st.Orders.Get())
	case ui.PageAdmin:
		name = "admin"
		data = view.BuildAdmin(frame, st.Stats.Get())
	default:
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.render.Render(w, name, data); err != nil {
		s.log.Error("render failed", "page", page, "error", err)
	}
}

func (s *Server) handlePage(page ui.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Refresh failures leave the previous snapshot in place and set
		// an error notice; the page still renders.
		_ = s.ctrl.Navigate(r.Context(), page)
		s.renderPage(w, r, page)
	}
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var categoryID *int64
	if raw := q.Get("category_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			categoryID = &id
		}
	}
	if err := s.ctrl.SetFilters(q.Get("search"), categoryID, q.Get("price")); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_ = s.ctrl.Navigate(r.Context(), ui.PageProducts)
	s.renderPage(w, r, ui.PageProducts)
}

func (s *Server) handleProductDetail(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	p, err := s.ctrl.Product(r.Context(), id)
	if err != nil {
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}
	data := view.ProductPage{
		Frame:   s.frame(ui.PageProducts),
		Product: view.BuildProductDetail(p, s.ctrl.Store().Categories.Get()),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.render.Render(w, "product", data); err != nil {
		s.log.Error("render failed", "page", "product", "error", err)
	}
}

func (s *Server) handleOrderDetail(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}
	o, err := s.ctrl.Order(r.Context(), id)
	if err != nil {
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}
	data := view.OrderPage{
		Frame: s.frame(ui.PageOrders),
		Order: view.BuildOrderDetail(o),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.render.Render(w, "order", data); err != nil {
		s.log.Error("render failed", "page", "order", "error", err)
	}
}

type addToCartForm struct {
	ProductID int64 `validate:"required,gt=0"`
	Quantity  int64 `validate:"required,gt=0"`
}

func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	form := addToCartForm{Quantity: 1}
	form.ProductID, _ = strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if raw := r.FormValue("quantity"); raw != "" {
		form.Quantity, _ = strconv.ParseInt(raw, 10, 64)
	}
	if err := s.validator.Struct(form); err != nil {
		s.ctrl.Notices().Show(ui.SeverityError, "Error adding to cart")
		http.Redirect(w, r, backTo(r, "/products"), http.StatusSeeOther)
		return
	}
	_ = s.ctrl.AddToCart(r.Context(), form.ProductID, form.Quantity)
	http.Redirect(w, r, backTo(r, "/products"), http.StatusSeeOther)
}

func (s *Server) handleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		http.Error(w, "invalid cart item id", http.StatusBadRequest)
		return
	}
	// Zero and negative quantities pass through untouched; the backend
	// decides what they mean.
	quantity, err := strconv.ParseInt(r.FormValue("quantity"), 10, 64)
	if err != nil {
		http.Error(w, "invalid quantity", http.StatusBadRequest)
		return
	}
	_ = s.ctrl.UpdateQuantity(r.Context(), id, quantity)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		http.Error(w, "invalid cart item id", http.StatusBadRequest)
		return
	}
	_ = s.ctrl.RemoveItem(r.Context(), id)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	confirmed := r.FormValue("confirm") == "yes"
	_ = s.ctrl.ClearCart(r.Context(), confirmed)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

type checkoutForm struct {
	ShippingAddress string `validate:"required,min=10"`
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	form := checkoutForm{ShippingAddress: r.FormValue("shipping_address")}
	if err := s.validator.Struct(form); err != nil {
		s.ctrl.Notices().Show(ui.SeverityError, "Please enter a valid shipping address (minimum 10 characters)")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	if err := s.ctrl.Checkout(r.Context(), form.ShippingAddress); err != nil {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

func (s *Server) handleRefreshStats(w http.ResponseWriter, r *http.Request) {
	_ = s.ctrl.RefreshStats(r.Context())
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) handleDismissNotice(w http.ResponseWriter, r *http.Request) {
	s.ctrl.Notices().Dismiss()
	http.Redirect(w, r, backTo(r, "/home"), http.StatusSeeOther)
}

func parseIDParam(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, key), 10, 64)
}

// backTo returns the referring page for a post-action redirect, or def when
// there is none.
func backTo(r *http.Request, def string) string {
	if ref := r.Header.Get("Referer"); ref != "" {
		return ref
	}
	return def
}
