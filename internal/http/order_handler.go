package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/example/erpbase/internal/order"
)

// OrderEvents is the slice of the events publisher the order handler uses.
type OrderEvents interface {
	PublishOrderCreated(ctx context.Context, o *order.Order) error
	PublishOrderDeleted(ctx context.Context, o *order.Order) error
}

type OrderHandler struct {
	repo   order.Repository
	events OrderEvents
	logger *log.Logger
}

func NewOrderHandler(repo order.Repository, events OrderEvents, logger *log.Logger) *OrderHandler {
	return &OrderHandler{repo: repo, events: events, logger: logger}
}

type createOrderRequest struct {
	Code       string          `json:"code"`
	CustomerID int64           `json:"customer_id"`
	Date       *time.Time      `json:"date"`
	Items      []order.NewItem `json:"items"`
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orders, err := h.repo.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Code == "" || req.CustomerID == 0 || len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "code, customer_id and items are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.repo.Create(ctx, req.Code, req.CustomerID, req.Date, req.Items)
	if err != nil {
		if errors.Is(err, order.ErrInvalidOrder) {
			writeError(w, http.StatusBadRequest, "code, customer_id and items are required")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create order")
		return
	}

	h.publish(ctx, "order.created", func(ctx context.Context) error {
		return h.events.PublishOrderCreated(ctx, o)
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"order": o,
		"items": o.Items,
	})
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete order")
		return
	}

	h.publish(ctx, "order.deleted", func(ctx context.Context) error {
		return h.events.PublishOrderDeleted(ctx, o)
	})

	writeJSON(w, http.StatusOK, map[string]any{"order": o})
}

// publish fires an event after a successful commit. Publishing is best-effort:
// a broker failure is logged and never fails the request.
func (h *OrderHandler) publish(ctx context.Context, name string, fn func(context.Context) error) {
	if h.events == nil {
		return
	}
	if err := fn(ctx); err != nil && h.logger != nil {
		h.logger.Printf("publish %s: %v", name, err)
	}
}
