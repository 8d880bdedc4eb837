package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/offer-tracker/internal/catalog"
)

const listingBody = `{
  "status": "ok",
  "result": {
    "items": [
      {
        "productId": "E457428-000",
        "name": "AIRism Cotton T-Shirt",
        "prices": {
          "base": {"value": 39.90},
          "promo": {"value": 29.90},
          "isDualPrice": true
        },
        "sizes": [
          {"name": "S", "displayCode": "002"},
          {"name": "M", "displayCode": "003"}
        ]
      }
    ]
  }
}`

func TestHTTPClient_FetchPage(t *testing.T) {
	t.Parallel()

	var gotQuery map[string]string
	var gotUA, gotAccept, gotExtra string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"offset":  q.Get("offset"),
			"limit":   q.Get("limit"),
			"path":    q.Get("path"),
			"genders": q.Get("genders"),
		}
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotExtra = r.Header.Get("X-Country")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(listingBody))
	}))
	defer srv.Close()

	c := catalog.NewHTTPClient(srv.URL+"/api/products?path=1,2&genders=men",
		catalog.WithParams(map[string]string{"genders": "women"}),
		catalog.WithHeaders(map[string]string{"X-Country": "ro"}),
	)

	page, err := c.FetchPage(context.Background(), catalog.PageRequest{Offset: 72, Limit: 36})
	require.NoError(t, err)

	assert.Equal(t, "72", gotQuery["offset"])
	assert.Equal(t, "36", gotQuery["limit"])
	assert.Equal(t, "1,2", gotQuery["path"])
	assert.Equal(t, "women", gotQuery["genders"])
	assert.Equal(t, "Mozilla/5.0", gotUA)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "ro", gotExtra)

	require.Len(t, page.Items, 1)
	it := page.Items[0]
	assert.Equal(t, "E457428-000", it.ProductID)
	assert.Equal(t, "AIRism Cotton T-Shirt", it.Name)
	require.NotNil(t, it.Prices.Base)
	require.NotNil(t, it.Prices.Promo)
	assert.Equal(t, "39.9", it.Prices.Base.Value.String())
	assert.Equal(t, "29.9", it.Prices.Promo.Value.String())
	assert.True(t, it.Prices.IsDualPrice)
	require.Len(t, it.Sizes, 2)
	assert.Equal(t, "003", it.Sizes[1].DisplayCode)
	assert.Equal(t, 72, page.Offset)
	assert.Equal(t, 36, page.Limit)
}

func TestHTTPClient_FetchPage_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "server error",
			status:  http.StatusServiceUnavailable,
			body:    "maintenance",
			wantErr: catalog.ErrUnexpectedStatus,
		},
		{
			name:    "not json",
			status:  http.StatusOK,
			body:    "<html>blocked</html>",
			wantErr: catalog.ErrMalformedResponse,
		},
		{
			name:    "missing result",
			status:  http.StatusOK,
			body:    `{"status":"ok"}`,
			wantErr: catalog.ErrMalformedResponse,
		},
		{
			name:    "missing items",
			status:  http.StatusOK,
			body:    `{"result":{}}`,
			wantErr: catalog.ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := catalog.NewHTTPClient(srv.URL)
			page, err := c.FetchPage(context.Background(), catalog.PageRequest{Limit: 36})
			require.Error(t, err)
			assert.Nil(t, page)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestHTTPClient_FetchPage_EmptyItems(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result":{"items":[]}}`))
	}))
	defer srv.Close()

	page, err := catalog.NewHTTPClient(srv.URL).FetchPage(context.Background(), catalog.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestHTTPClient_FetchPage_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"result":{"items":[]}}`))
	}))
	defer srv.Close()

	c := catalog.NewHTTPClient(srv.URL, catalog.WithTimeout(20*time.Millisecond))
	_, err := c.FetchPage(context.Background(), catalog.PageRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executing catalog request")
}

func TestHTTPClient_FetchPage_CanceledWhileRateLimited(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result":{"items":[]}}`))
	}))
	defer srv.Close()

	c := catalog.NewHTTPClient(srv.URL, catalog.WithRateLimit(0.001, 1))

	_, err := c.FetchPage(context.Background(), catalog.PageRequest{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = c.FetchPage(ctx, catalog.PageRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter wait")
}
