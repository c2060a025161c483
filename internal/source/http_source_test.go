package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const fakestoreBody = `[
  {"id":1,"title":"Fjallraven - Foldsack No. 1 Backpack","price":109.95,"description":"bag","category":"men's clothing","image":"https://fakestoreapi.com/img/81fPKd-2AYL._AC_SL1500_.jpg","rating":{"rate":3.9,"count":120}},
  {"id":2,"title":"Mens Casual Premium Slim Fit T-Shirts","price":22.3,"category":"men's clothing","image":"https://fakestoreapi.com/img/71-3HjGNDUL.jpg","rating":{"rate":4.1,"count":259}},
  {"id":3,"title":"Broken","price":-1,"category":"misc","image":"","rating":{"rate":1,"count":1}}
]`

func newHTTPSource(t *testing.T, url string) *source.HTTPSource {
	t.Helper()
	return source.NewHTTPSource(source.HTTPOptions{
		URL:             url,
		Timeout:         time.Second,
		MaxTries:        3,
		InitialInterval: time.Millisecond,
		Logger:          zaptest.NewLogger(t),
	})
}

func TestHTTPSource_FetchProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fakestoreBody))
	}))
	defer srv.Close()

	products, err := newHTTPSource(t, srv.URL).FetchProducts(t.Context())
	require.NoError(t, err)

	require.Len(t, products, 2, "invalid product is dropped")
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "109.95", products[0].Price.StringFixed(2))
	assert.Equal(t, "men's clothing", products[0].Category)
	assert.Equal(t, domain.Rating{Rate: 3.9, Count: 120}, products[0].Rating)
	assert.Equal(t, "22.30", products[1].Price.StringFixed(2))
}

func TestHTTPSource_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(fakestoreBody))
	}))
	defer srv.Close()

	products, err := newHTTPSource(t, srv.URL).FetchProducts(t.Context())
	require.NoError(t, err)

	assert.Len(t, products, 2)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPSource_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantCalls int32
	}{
		{
			name:      "server error exhausts retries: fetch error",
			status:    http.StatusInternalServerError,
			wantCalls: 3,
		},
		{
			name:      "not found is permanent: fetch error",
			status:    http.StatusNotFound,
			wantCalls: 1,
		},
		{
			name:      "malformed body is permanent: fetch error",
			status:    http.StatusOK,
			body:      `{"not":"a list"`,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newHTTPSource(t, srv.URL).FetchProducts(t.Context())

			require.ErrorIs(t, err, domain.ErrFetch)
			var fetchErr *domain.FetchError
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, srv.URL, fetchErr.Source)
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}

func TestHTTPSource_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fakestoreBody))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := newHTTPSource(t, srv.URL).FetchProducts(ctx)
	require.ErrorIs(t, err, domain.ErrFetch)
}
