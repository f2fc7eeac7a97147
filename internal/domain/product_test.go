package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64   { return &v }
func strPtr(v string) *string       { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func TestCreateProduct_Success(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	product, err := CreateProduct(ProductInput{
		ID:    "p1",
		Name:  "Widget",
		Price: floatPtr(9.99),
	}, now)
	require.NoError(t, err)
	require.NotNil(t, product)

	assert.Equal(t, "p1", product.ID)
	assert.Equal(t, "Widget", product.Name)
	assert.True(t, product.Price.Equal(decimal.NewFromFloat(9.99)))
	assert.Nil(t, product.Description)
	assert.Nil(t, product.Category)
	assert.True(t, product.CreatedAt.Equal(now))
	assert.True(t, product.UpdatedAt.Equal(now))
}

func TestCreateProduct_CollectsAllViolations(t *testing.T) {
	now := time.Now()

	_, err := CreateProduct(ProductInput{
		ID:    "",
		Name:  "Widget",
		Price: floatPtr(-1),
	}, now)
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{
		"product id is required",
		"price must be a non-negative finite number",
	}, verrs.Messages())
}

func TestCreateProduct_ValidationRules(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		input   ProductInput
		wantErr error
	}{
		{
			name:    "missing id",
			input:   ProductInput{Name: "Widget", Price: floatPtr(1)},
			wantErr: e.ErrProductIDRequired,
		},
		{
			name:    "whitespace-only id",
			input:   ProductInput{ID: "   ", Name: "Widget", Price: floatPtr(1)},
			wantErr: e.ErrProductIDRequired,
		},
		{
			name:    "missing name",
			input:   ProductInput{ID: "p1", Price: floatPtr(1)},
			wantErr: e.ErrProductNameRequired,
		},
		{
			name:    "whitespace-only name",
			input:   ProductInput{ID: "p1", Name: "\t  ", Price: floatPtr(1)},
			wantErr: e.ErrProductNameRequired,
		},
		{
			name:    "missing price",
			input:   ProductInput{ID: "p1", Name: "Widget"},
			wantErr: e.ErrPriceNonNegative,
		},
		{
			name:    "negative price",
			input:   ProductInput{ID: "p1", Name: "Widget", Price: floatPtr(-0.01)},
			wantErr: e.ErrPriceNonNegative,
		},
		{
			name:    "NaN price",
			input:   ProductInput{ID: "p1", Name: "Widget", Price: floatPtr(math.NaN())},
			wantErr: e.ErrPriceNonNegative,
		},
		{
			name:    "infinite price",
			input:   ProductInput{ID: "p1", Name: "Widget", Price: floatPtr(math.Inf(1))},
			wantErr: e.ErrPriceNonNegative,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := CreateProduct(tt.input, now)
			require.Error(t, err)
			assert.Nil(t, product, "invalid input must never yield an entity")
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v in %v", tt.wantErr, err)
		})
	}
}

func TestCreateProduct_ZeroPriceIsValid(t *testing.T) {
	product, err := CreateProduct(ProductInput{
		ID:    "p1",
		Name:  "Freebie",
		Price: floatPtr(0),
	}, time.Now())
	require.NoError(t, err)
	assert.True(t, product.Price.IsZero())
}

func TestCreateProduct_TimestampDefaults(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	supplied := time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)

	t.Run("both missing", func(t *testing.T) {
		product, err := CreateProduct(ProductInput{ID: "p1", Name: "Widget", Price: floatPtr(1)}, now)
		require.NoError(t, err)
		assert.True(t, product.CreatedAt.Equal(now))
		assert.True(t, product.UpdatedAt.Equal(product.CreatedAt))
	})

	t.Run("only updatedAt supplied defaults createdAt independently", func(t *testing.T) {
		product, err := CreateProduct(ProductInput{
			ID:        "p1",
			Name:      "Widget",
			Price:     floatPtr(1),
			UpdatedAt: timePtr(supplied),
		}, now)
		require.NoError(t, err)
		assert.True(t, product.CreatedAt.Equal(now))
		assert.True(t, product.UpdatedAt.Equal(supplied))
	})

	t.Run("only createdAt supplied chains updatedAt", func(t *testing.T) {
		product, err := CreateProduct(ProductInput{
			ID:        "p1",
			Name:      "Widget",
			Price:     floatPtr(1),
			CreatedAt: timePtr(supplied),
		}, now)
		require.NoError(t, err)
		assert.True(t, product.CreatedAt.Equal(supplied))
		assert.True(t, product.UpdatedAt.Equal(supplied))
	})

	t.Run("zero time treated as missing", func(t *testing.T) {
		product, err := CreateProduct(ProductInput{
			ID:        "p1",
			Name:      "Widget",
			Price:     floatPtr(1),
			CreatedAt: timePtr(time.Time{}),
		}, now)
		require.NoError(t, err)
		assert.True(t, product.CreatedAt.Equal(now))
	})
}

func TestCreateProduct_Deterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	input := ProductInput{
		ID:          "p1",
		Name:        "Widget",
		Price:       floatPtr(9.99),
		Description: strPtr("a widget"),
		Category:    strPtr("tools"),
	}

	first, err := CreateProduct(input, now)
	require.NoError(t, err)
	second, err := CreateProduct(input, now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCreateProduct_DoesNotShareMemoryWithInput(t *testing.T) {
	desc := "original"
	input := ProductInput{ID: "p1", Name: "Widget", Price: floatPtr(1), Description: &desc}

	product, err := CreateProduct(input, time.Now())
	require.NoError(t, err)

	desc = "mutated"
	assert.Equal(t, "original", *product.Description)
}
