package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"overcooked-cart/cart-svc/internal/domain"
	"overcooked-cart/cart-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const (
	defaultMenuSize = 8
	maxMenuSize     = 24
)

type Handler struct {
	Store     service.DurableStore
	Catalog   service.Catalog
	Auth      service.Authenticator
	Pricing   service.Pricing
	Publisher service.OrderPublisher
	QR        service.QRGenerator
	Logger    logrus.FieldLogger
}

func NewHandler(store service.DurableStore, catalog service.Catalog, auth service.Authenticator, publisher service.OrderPublisher, qr service.QRGenerator, logger logrus.FieldLogger) *Handler {
	return &Handler{
		Store:     store,
		Catalog:   catalog,
		Auth:      auth,
		Pricing:   service.NewPricing(),
		Publisher: publisher,
		QR:        qr,
		Logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(requestLogger(h.Logger))

	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/menu/{id}", h.getDish).Methods("GET")

	scoped := r.PathPrefix("/api").Subrouter()
	scoped.Use(h.withClientScope)

	scoped.HandleFunc("/auth/login", h.login).Methods("POST")
	scoped.HandleFunc("/auth/logout", h.logout).Methods("POST")
	scoped.HandleFunc("/session", h.getSession).Methods("GET")
	scoped.HandleFunc("/session/profile", h.updateProfile).Methods("PUT")

	scoped.HandleFunc("/cart", h.getCart).Methods("GET")
	scoped.HandleFunc("/cart/items", h.addCartItem).Methods("POST")
	scoped.HandleFunc("/cart/items/{id}", h.updateCartItem).Methods("PUT")
	scoped.HandleFunc("/cart/items/{id}", h.removeCartItem).Methods("DELETE")

	scoped.HandleFunc("/checkout", h.reviewCheckout).Methods("GET")
	scoped.HandleFunc("/checkout", h.submitCheckout).Methods("POST")

	scoped.HandleFunc("/orders", h.getOrders).Methods("GET")
	scoped.HandleFunc("/orders/{id}", h.getOrder).Methods("GET")
	scoped.HandleFunc("/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")
}

// page holds everything one request works with. Nothing in it outlives
// the request.
type page struct {
	gate     *service.AuthGate
	carts    *service.CartRepository
	orders   *service.OrderHistoryRepository
	checkout *service.Checkout
	receipts *service.ReceiptService
}

func (h *Handler) page(r *http.Request) *page {
	store := scopeFrom(r.Context())
	logger := h.Logger.WithField("client_id", r.Header.Get(ClientIDHeader))

	gate := service.NewAuthGate(store, logger)
	carts := service.NewCartRepository(store, gate, logger)
	orders := service.NewOrderHistoryRepository(store, logger)
	return &page{
		gate:     gate,
		carts:    carts,
		orders:   orders,
		checkout: service.NewCheckout(carts, orders, gate, h.Pricing, h.Publisher, logger),
		receipts: service.NewReceiptService(orders, h.QR),
	}
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "cart-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	credential, err := h.Auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	profile := domain.UserSession{Name: req.Name, Email: req.Email, Phone: req.Phone, Address: req.Address}
	p := h.page(r)
	if err := p.gate.StartSession(r.Context(), credential, profile); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: true, User: &profile, Redirect: "/menu"})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.page(r).gate.EndSession(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type sessionResponse struct {
	Authenticated bool                `json:"authenticated"`
	User          *domain.UserSession `json:"user,omitempty"`
	Redirect      string              `json:"redirect,omitempty"`
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	session, ok, err := h.page(r).gate.CurrentSession(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: true, User: &session})
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	session, err := h.page(r).gate.UpdateProfile(r.Context(), req.Name, req.Phone, req.Address)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: true, User: &session})
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	count := defaultMenuSize
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxMenuSize {
			http.Error(w, "count must be between 1 and "+strconv.Itoa(maxMenuSize), http.StatusBadRequest)
			return
		}
		count = n
	}

	dishes, err := h.Catalog.Random(r.Context(), count)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dishes)
}

func (h *Handler) getDish(w http.ResponseWriter, r *http.Request) {
	dish, err := h.Catalog.Lookup(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

type cartResponse struct {
	Items    []domain.QuoteLine `json:"items"`
	Subtotal int                `json:"subtotal"`
	Empty    bool               `json:"empty"`
	Redirect string             `json:"redirect,omitempty"`
}

func (h *Handler) cartBody(cart domain.Cart) cartResponse {
	quote := h.Pricing.Quote(cart, "")
	return cartResponse{Items: quote.Lines, Subtotal: quote.Subtotal, Empty: cart.IsEmpty()}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.page(r).carts.Load(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.cartBody(cart))
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DishID string `json:"dish_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p := h.page(r)
	// Checked before the catalog round trip so a signed-out client goes
	// straight to login.
	if _, err := p.gate.RequireSession(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}

	dish, err := h.Catalog.Lookup(r.Context(), req.DishID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	cart, err := p.carts.AddOrIncrement(r.Context(), dish)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.cartBody(cart))
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cart, err := h.page(r).carts.SetQuantity(r.Context(), mux.Vars(r)["id"], req.Quantity)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.cartBody(cart))
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.page(r).carts.Remove(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	body := h.cartBody(cart)
	if body.Empty {
		body.Redirect = "/menu"
	}
	writeJSON(w, http.StatusOK, body)
}

type reviewResponse struct {
	domain.Quote
	State    service.CheckoutState `json:"state"`
	Customer domain.UserSession    `json:"customer"`
}

func (h *Handler) reviewCheckout(w http.ResponseWriter, r *http.Request) {
	option := domain.DeliveryOption(r.URL.Query().Get("delivery_option"))
	if option == "" {
		option = domain.DeliveryOptionDelivery
	}

	p := h.page(r)
	quote, err := p.checkout.Review(r.Context(), option)
	if err != nil {
		h.writeError(w, err)
		return
	}
	session, err := p.gate.RequireSession(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	session.Credential = ""
	writeJSON(w, http.StatusOK, reviewResponse{Quote: quote, State: p.checkout.State(), Customer: session})
}

type submitResponse struct {
	Order     domain.DraftOrder     `json:"order"`
	State     service.CheckoutState `json:"state"`
	QRCodeURL string                `json:"qr_code_url"`
	Redirect  string                `json:"redirect"`
}

func (h *Handler) submitCheckout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeliveryOption domain.DeliveryOption `json:"delivery_option"`
		Notes          string                `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p := h.page(r)
	order, err := p.checkout.Submit(r.Context(), req.DeliveryOption, req.Notes)
	if errors.Is(err, service.ErrCartNotCleared) {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error:     err.Error(),
			Retryable: false,
			OrderID:   order.ID,
		})
		return
	}
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{
		Order:     order,
		State:     p.checkout.State(),
		QRCodeURL: "/api/orders/" + order.ID + "/qrcode",
		Redirect:  "/order-confirmation",
	})
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	history, err := h.page(r).orders.Load(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history.Orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.page(r).orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	qr, err := h.page(r).receipts.QRCode(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(qr)
}
