package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/example/erpbase/internal/supplier"
)

type SupplierHandler struct {
	repo supplier.Repository
}

func NewSupplierHandler(repo supplier.Repository) *SupplierHandler {
	return &SupplierHandler{repo: repo}
}

func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	suppliers, err := h.repo.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load suppliers")
		return
	}
	writeJSON(w, http.StatusOK, suppliers)
}

func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var s supplier.Supplier
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if s.Code == "" || s.Name == "" {
		writeError(w, http.StatusBadRequest, "code and name are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	created, err := h.repo.Create(ctx, s)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create supplier")
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var s supplier.Supplier
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if s.Code == "" || s.Name == "" {
		writeError(w, http.StatusBadRequest, "code and name are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	updated, err := h.repo.Update(ctx, id, s)
	if err != nil {
		if errors.Is(err, supplier.ErrNotFound) {
			writeError(w, http.StatusNotFound, "supplier not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update supplier")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	deleted, err := h.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, supplier.ErrNotFound) {
			writeError(w, http.StatusNotFound, "supplier not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete supplier")
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}
