package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/example/erpbase/internal/customer"
	"github.com/example/erpbase/internal/product"
)

// ImportHandler serves the spreadsheet bulk-import endpoints. Imports are a
// loop of single inserts with no transaction, so a failure reports how many
// rows made it in before the bad one.
type ImportHandler struct {
	products  product.Repository
	customers customer.Repository
}

func NewImportHandler(products product.Repository, customers customer.Repository) *ImportHandler {
	return &ImportHandler{products: products, customers: customers}
}

func (h *ImportHandler) Products(w http.ResponseWriter, r *http.Request) {
	var rows []product.Product
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(rows) == 0 {
		writeError(w, http.StatusBadRequest, "no rows to import")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	n, err := h.products.BulkInsert(ctx, rows)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":    "import failed",
			"imported": n,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"imported": n})
}

func (h *ImportHandler) Customers(w http.ResponseWriter, r *http.Request) {
	var rows []customer.Customer
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(rows) == 0 {
		writeError(w, http.StatusBadRequest, "no rows to import")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	n, err := h.customers.BulkInsert(ctx, rows)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":    "import failed",
			"imported": n,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"imported": n})
}
