package dummyjson

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dummyclient "github.com/Apurer/retail-inventory-api/internal/clients/http/dummyjson"
)

func TestToExternalProduct(t *testing.T) {
	got := ToExternalProduct(dummyclient.Product{ID: 3, Title: " Mascara ", Price: 9.999, Stock: -2})
	assert.Equal(t, 3, got.ExternalID)
	assert.Equal(t, "Mascara", got.Title)
	assert.True(t, decimal.RequireFromString("10.00").Equal(got.Price))
	assert.Equal(t, 0, got.Stock)
}

func TestCatalog_FetchCustomers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"users":[{"id":1,"firstName":"Emily","lastName":"Johnson","email":"emily.johnson@x.dummyjson.com"}],"total":1,"skip":0,"limit":50}`))
	}))
	defer srv.Close()

	client, err := dummyclient.NewClient(srv.URL)
	require.NoError(t, err)

	customers, err := NewCatalog(client).FetchCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Johnson", customers[0].LastName)
	assert.Equal(t, 1, customers[0].ExternalID)
}
