package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/foodfetch/storefront/internal/dal/interfaces/icatalogapi"
	"github.com/foodfetch/storefront/internal/service/models/cartline"
	"github.com/foodfetch/storefront/internal/service/models/menuitem"
	"github.com/foodfetch/storefront/internal/service/models/order"
	"github.com/foodfetch/storefront/internal/service/models/user"
	cancelorder "github.com/foodfetch/storefront/internal/transport/http/cancel_order"
	carthandler "github.com/foodfetch/storefront/internal/transport/http/cart"
	createorder "github.com/foodfetch/storefront/internal/transport/http/create_order"
	listactiveorders "github.com/foodfetch/storefront/internal/transport/http/list_active_orders"
	menuhandler "github.com/foodfetch/storefront/internal/transport/http/menu"
	sessionhandler "github.com/foodfetch/storefront/internal/transport/http/session"
	trackorder "github.com/foodfetch/storefront/internal/transport/http/track_order"
	updatestatus "github.com/foodfetch/storefront/internal/transport/http/update_status"
	"github.com/foodfetch/storefront/internal/validation"
	"github.com/foodfetch/storefront/pkg/http/middleware/trace"
	"github.com/foodfetch/storefront/pkg/logger"
)

type cartService interface {
	AddItem(ctx context.Context, item cartline.CartLine)
	SetQuantity(ctx context.Context, id int64, quantity int)
	RemoveItem(ctx context.Context, id int64)
	Clear(ctx context.Context)
	Lines() []cartline.CartLine
	TotalItemCount() int
	TotalPrice() float64
}

type orderService interface {
	CreateOrder(ctx context.Context, o order.Order) (order.Order, error)
	ConfirmPayment(ctx context.Context, orderID string) (order.Order, bool)
	CancelOrder(ctx context.Context, orderID, reason string) error
	GetOrder(orderID string) (order.Order, bool)
	TrackOrder(ctx context.Context, orderID string) (order.Order, bool)
	AdvanceStatus(ctx context.Context, orderID string, target order.Status) (order.Order, bool)
	Orders() []order.Order
	HasActiveOrders() bool
	CurrentOrderID() string
}

type menuService interface {
	Restaurants(ctx context.Context) ([]icatalogapi.Restaurant, error)
	Restaurant(ctx context.Context, id int64) (*icatalogapi.Restaurant, error)
	Menu(ctx context.Context, restaurantID int64, query menuitem.QueryMenuItemsModel) ([]menuitem.MenuItem, error)
	ToggleFavorite(ctx context.Context, itemID int64) bool
}

type userService interface {
	SignIn(ctx context.Context, u user.User) (user.User, error)
	Current() (user.User, bool)
	SignOut(ctx context.Context) error
}

type HTTPTransport struct {
	server   *http.Server
	router   *chi.Mux
	carts    cartService
	orders   orderService
	menus    menuService
	users    userService
	validate *validatorv10.Validate
}

func NewHTTPTransport(carts cartService, orders orderService, menus menuService, users userService) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:   server,
		router:   router,
		carts:    carts,
		orders:   orders,
		menus:    menus,
		users:    users,
		validate: validation.New(),
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.getCart)
			r.Delete("/", h.clearCart)
			r.Post("/items", h.addCartItem)
			r.Put("/items/{id}", h.setCartQuantity)
			r.Delete("/items/{id}", h.removeCartItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.createOrder)
			r.Get("/active", h.listActiveOrders)
			r.Get("/{id}", h.trackOrder)
			r.Put("/{id}/status", h.updateStatus)
			r.Post("/{id}/cancel", h.cancelOrder)
		})

		r.Get("/restaurants", h.listRestaurants)
		r.Get("/restaurants/{id}", h.getRestaurant)
		r.Get("/menu/restaurants/{id}", h.getMenu)
		r.Post("/favorites/{id}", h.toggleFavorite)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.signIn)
			r.Get("/me", h.me)
			r.Post("/logout", h.signOut)
		})
	})
}

func (h *HTTPTransport) getCart(w http.ResponseWriter, r *http.Request) {
	carthandler.Get(w, r, h.carts)
}

func (h *HTTPTransport) clearCart(w http.ResponseWriter, r *http.Request) {
	carthandler.Clear(w, r, h.carts)
}

func (h *HTTPTransport) addCartItem(w http.ResponseWriter, r *http.Request) {
	carthandler.AddItem(w, r, h.carts, h.validate)
}

func (h *HTTPTransport) setCartQuantity(w http.ResponseWriter, r *http.Request) {
	carthandler.SetQuantity(w, r, h.carts, h.validate)
}

func (h *HTTPTransport) removeCartItem(w http.ResponseWriter, r *http.Request) {
	carthandler.RemoveItem(w, r, h.carts)
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.orders, h.carts, h.validate)
}

func (h *HTTPTransport) listActiveOrders(w http.ResponseWriter, r *http.Request) {
	listactiveorders.ListActiveOrders(w, r, h.orders)
}

func (h *HTTPTransport) trackOrder(w http.ResponseWriter, r *http.Request) {
	trackorder.TrackOrder(w, r, h.orders)
}

func (h *HTTPTransport) updateStatus(w http.ResponseWriter, r *http.Request) {
	updatestatus.UpdateStatus(w, r, h.orders, h.validate)
}

func (h *HTTPTransport) cancelOrder(w http.ResponseWriter, r *http.Request) {
	cancelorder.CancelOrder(w, r, h.orders, h.validate)
}

func (h *HTTPTransport) listRestaurants(w http.ResponseWriter, r *http.Request) {
	menuhandler.ListRestaurants(w, r, h.menus)
}

func (h *HTTPTransport) getRestaurant(w http.ResponseWriter, r *http.Request) {
	menuhandler.GetRestaurant(w, r, h.menus)
}

func (h *HTTPTransport) getMenu(w http.ResponseWriter, r *http.Request) {
	menuhandler.GetMenu(w, r, h.menus)
}

func (h *HTTPTransport) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	menuhandler.ToggleFavorite(w, r, h.menus)
}

func (h *HTTPTransport) signIn(w http.ResponseWriter, r *http.Request) {
	sessionhandler.SignIn(w, r, h.users, h.validate)
}

func (h *HTTPTransport) me(w http.ResponseWriter, r *http.Request) {
	sessionhandler.Me(w, r, h.users)
}

func (h *HTTPTransport) signOut(w http.ResponseWriter, r *http.Request) {
	sessionhandler.SignOut(w, r, h.users)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
