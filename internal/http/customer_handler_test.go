package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/erpbase/internal/customer"
)

type fakeCustomerRepo struct {
	listFunc   func(ctx context.Context) ([]customer.Customer, error)
	createFunc func(ctx context.Context, c customer.Customer) (*customer.Customer, error)
	updateFunc func(ctx context.Context, id int64, c customer.Customer) (*customer.Customer, error)
	deleteFunc func(ctx context.Context, id int64) (*customer.Customer, error)
	bulkFunc   func(ctx context.Context, customers []customer.Customer) (int, error)
}

func (f *fakeCustomerRepo) List(ctx context.Context) ([]customer.Customer, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx)
	}
	return nil, nil
}

func (f *fakeCustomerRepo) Create(ctx context.Context, c customer.Customer) (*customer.Customer, error) {
	if f.createFunc != nil {
		return f.createFunc(ctx, c)
	}
	return &c, nil
}

func (f *fakeCustomerRepo) Update(ctx context.Context, id int64, c customer.Customer) (*customer.Customer, error) {
	if f.updateFunc != nil {
		return f.updateFunc(ctx, id, c)
	}
	return &c, nil
}

func (f *fakeCustomerRepo) Delete(ctx context.Context, id int64) (*customer.Customer, error) {
	if f.deleteFunc != nil {
		return f.deleteFunc(ctx, id)
	}
	return nil, customer.ErrNotFound
}

func (f *fakeCustomerRepo) BulkInsert(ctx context.Context, customers []customer.Customer) (int, error) {
	if f.bulkFunc != nil {
		return f.bulkFunc(ctx, customers)
	}
	return len(customers), nil
}

func TestCustomerList_Success(t *testing.T) {
	repo := &fakeCustomerRepo{
		listFunc: func(ctx context.Context) ([]customer.Customer, error) {
			return []customer.Customer{
				{ID: 1, Code: "C-1", Name: "Alpha Ltd"},
				{ID: 2, Code: "C-2", Name: "Beta Co"},
			}, nil
		},
	}
	handler := NewCustomerHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	rr := httptest.NewRecorder()

	handler.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp []customer.Customer
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "Alpha Ltd", resp[0].Name)
}

func TestCustomerCreate_MissingFields(t *testing.T) {
	handler := NewCustomerHandler(&fakeCustomerRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/customers",
		bytes.NewBufferString(`{"code":"C-1"}`))
	rr := httptest.NewRecorder()

	handler.Create(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCustomerUpdate_NotFound(t *testing.T) {
	repo := &fakeCustomerRepo{
		updateFunc: func(ctx context.Context, id int64, c customer.Customer) (*customer.Customer, error) {
			return nil, customer.ErrNotFound
		},
	}
	handler := NewCustomerHandler(repo)

	req := httptest.NewRequest(http.MethodPut, "/api/customers/404",
		bytes.NewBufferString(`{"code":"C-404","name":"Ghost"}`))
	rr := httptest.NewRecorder()

	handler.Update(rr, withIDParam(req, "404"))

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCustomerDelete_Success(t *testing.T) {
	repo := &fakeCustomerRepo{
		deleteFunc: func(ctx context.Context, id int64) (*customer.Customer, error) {
			return &customer.Customer{ID: id, Code: "C-1", Name: "Alpha Ltd"}, nil
		},
	}
	handler := NewCustomerHandler(repo)

	req := httptest.NewRequest(http.MethodDelete, "/api/customers/1", nil)
	rr := httptest.NewRecorder()

	handler.Delete(rr, withIDParam(req, "1"))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp customer.Customer
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, int64(1), resp.ID)
}

func TestImportCustomers(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &fakeCustomerRepo{}
		handler := NewImportHandler(nil, repo)

		body := `[{"code":"C-1","name":"Alpha"},{"code":"C-2","name":"Beta"}]`
		req := httptest.NewRequest(http.MethodPost, "/api/import/customers", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()

		handler.Customers(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]int
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, 2, resp["imported"])
	})

	t.Run("empty payload", func(t *testing.T) {
		handler := NewImportHandler(nil, &fakeCustomerRepo{})

		req := httptest.NewRequest(http.MethodPost, "/api/import/customers", bytes.NewBufferString(`[]`))
		rr := httptest.NewRecorder()

		handler.Customers(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("partial failure reports rows inserted", func(t *testing.T) {
		repo := &fakeCustomerRepo{
			bulkFunc: func(ctx context.Context, customers []customer.Customer) (int, error) {
				return 1, errors.New("insert customer 1: bad row")
			},
		}
		handler := NewImportHandler(nil, repo)

		body := `[{"code":"C-1","name":"Alpha"},{"code":"","name":""}]`
		req := httptest.NewRequest(http.MethodPost, "/api/import/customers", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()

		handler.Customers(rr, req)

		require.Equal(t, http.StatusInternalServerError, rr.Code)

		var resp map[string]any
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, float64(1), resp["imported"])
	})
}

