package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/example/erpbase/internal/category"
	"github.com/example/erpbase/internal/config"
	"github.com/example/erpbase/internal/customer"
	"github.com/example/erpbase/internal/order"
	"github.com/example/erpbase/internal/product"
	"github.com/example/erpbase/internal/supplier"
	"github.com/example/erpbase/internal/user"
)

// Deps bundles everything the router needs. OrderEvents may be nil when
// publishing is disabled.
type Deps struct {
	Logger       *log.Logger
	JWT          *config.JWTConfig
	AuthRequired bool

	Orders      order.Repository
	OrderEvents OrderEvents
	Customers   customer.Repository
	Suppliers   supplier.Repository
	Categories  category.Repository
	Products    product.Repository
	Users       user.Repository
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", healthHandler)

	authH := NewAuthHandler(deps.Users, deps.JWT)
	r.Post("/login", authH.Login)
	r.Post("/register", authH.Register)

	orderH := NewOrderHandler(deps.Orders, deps.OrderEvents, deps.Logger)
	customerH := NewCustomerHandler(deps.Customers)
	supplierH := NewSupplierHandler(deps.Suppliers)
	categoryH := NewCategoryHandler(deps.Categories)
	productH := NewProductHandler(deps.Products)
	importH := NewImportHandler(deps.Products, deps.Customers)

	r.Route("/api", func(api chi.Router) {
		if deps.AuthRequired {
			api.Use(RequireAuth(deps.JWT))
		}

		api.Route("/orders", func(r chi.Router) {
			r.Get("/", orderH.List)
			r.Post("/", orderH.Create)
			r.Delete("/{id}", orderH.Delete)
		})
		api.Route("/customers", func(r chi.Router) {
			r.Get("/", customerH.List)
			r.Post("/", customerH.Create)
			r.Put("/{id}", customerH.Update)
			r.Delete("/{id}", customerH.Delete)
		})
		api.Route("/suppliers", func(r chi.Router) {
			r.Get("/", supplierH.List)
			r.Post("/", supplierH.Create)
			r.Put("/{id}", supplierH.Update)
			r.Delete("/{id}", supplierH.Delete)
		})
		api.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryH.List)
			r.Post("/", categoryH.Create)
			r.Put("/{id}", categoryH.Update)
			r.Delete("/{id}", categoryH.Delete)
		})
		api.Route("/products", func(r chi.Router) {
			r.Get("/", productH.List)
			r.Post("/", productH.Create)
			r.Put("/{id}", productH.Update)
			r.Delete("/{id}", productH.Delete)
		})
		api.Route("/import", func(r chi.Router) {
			r.Post("/products", importH.Products)
			r.Post("/customers", importH.Customers)
		})
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "erp-backend",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
