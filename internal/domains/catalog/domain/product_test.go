package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct_Validates(t *testing.T) {
	_, err := NewProduct(uuid.Nil, "Phone", "SKU-1", decimal.NewFromInt(100), 1)
	require.ErrorIs(t, err, ErrInvalidProductID)

	_, err = NewProduct(uuid.New(), "Phone", "SKU-1", decimal.NewFromInt(-1), 1)
	require.ErrorIs(t, err, ErrNegativePrice)

	_, err = NewProduct(uuid.New(), "Phone", "SKU-1", decimal.NewFromInt(1), -1)
	require.ErrorIs(t, err, ErrNegativeStock)

	product, err := NewProduct(uuid.New(), " Phone ", "SKU-1", decimal.RequireFromString("9.999"), 3)
	require.NoError(t, err)
	assert.Equal(t, "Phone", product.Name)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("10.00")))
}

func TestProductReserve(t *testing.T) {
	product, err := NewProduct(uuid.New(), "Phone", "SKU-1", decimal.NewFromInt(100), 5)
	require.NoError(t, err)

	require.NoError(t, product.Reserve(2))
	assert.Equal(t, 3, product.StockQuantity)

	err = product.Reserve(10)
	require.ErrorIs(t, err, ErrInsufficientStock)
	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, product.ID, stockErr.ProductID)
	assert.Equal(t, 3, stockErr.Available)
	assert.Equal(t, 10, stockErr.Requested)
	assert.Contains(t, err.Error(), "Phone")
	assert.Equal(t, 3, product.StockQuantity)

	require.ErrorIs(t, product.Reserve(0), ErrInvalidQuantity)
	require.NoError(t, product.Release(2))
	assert.Equal(t, 5, product.StockQuantity)
}

func TestSortKeys(t *testing.T) {
	assert.Equal(t, ProductSortPrice, ParseProductSortKey("PRICE"))
	assert.Equal(t, ProductSortName, ParseProductSortKey("bogus"))
	assert.Equal(t, CustomerSortFirstName, ParseCustomerSortKey("firstName"))
	assert.Equal(t, CustomerSortLastName, ParseCustomerSortKey(""))
}

func TestImportedSKU(t *testing.T) {
	assert.Equal(t, "DUMMY-42", ImportedSKU(42))
}
