package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/erpbase/internal/auth"
	"github.com/example/erpbase/internal/order"
)

func testDeps(orders order.Repository) Deps {
	return Deps{
		Logger:    discardLogger(),
		JWT:       testJWT,
		Orders:    orders,
		Users:     &fakeUserRepo{},
		Customers: &fakeCustomerRepo{},
	}
}

func TestRouter_Health(t *testing.T) {
	router := NewRouter(testDeps(&fakeOrderRepo{}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "erp-backend", resp["service"])
}

func TestRouter_DeleteOrderRouting(t *testing.T) {
	var gotID int64
	repo := &fakeOrderRepo{
		deleteFunc: func(ctx context.Context, orderID int64) (*order.Order, error) {
			gotID = orderID
			return &order.Order{ID: orderID, Code: "O-1"}, nil
		},
	}
	router := NewRouter(testDeps(repo))

	req := httptest.NewRequest(http.MethodDelete, "/api/orders/7", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(7), gotID)
}

func TestRouter_AuthRequired(t *testing.T) {
	repo := &fakeOrderRepo{
		listFunc: func(ctx context.Context) ([]order.Order, error) {
			return []order.Order{}, nil
		},
	}
	deps := testDeps(repo)
	deps.AuthRequired = true
	router := NewRouter(deps)

	// No token.
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	// Bad token.
	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	// Valid token.
	token, err := auth.GenerateToken(testJWT, 1, "a@b.c")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	// Login stays reachable without a token.
	req = httptest.NewRequest(http.MethodPost, "/login", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.NotEqual(t, http.StatusUnauthorized, rr.Code)
}
