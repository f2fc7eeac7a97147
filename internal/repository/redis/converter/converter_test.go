package converter

import (
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductConverter_RoundTrip(t *testing.T) {
	conv := NewProductConverter()

	desc := "a widget"
	entity := &domain.Product{
		ID:          "p1",
		Name:        "Widget",
		Price:       decimal.NewFromFloat(9.99),
		Description: &desc,
		CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
	}

	back, err := conv.ToEntity(conv.ToRedisModel(entity))
	require.NoError(t, err)

	assert.Equal(t, entity.ID, back.ID)
	assert.Equal(t, entity.Name, back.Name)
	assert.True(t, back.Price.Equal(entity.Price))
	assert.Equal(t, entity.Description, back.Description)
	assert.Nil(t, back.Category)
	assert.True(t, back.CreatedAt.Equal(entity.CreatedAt))
	assert.True(t, back.UpdatedAt.Equal(entity.UpdatedAt))
}

func TestProductConverter_ToEntity_CorruptPrice(t *testing.T) {
	conv := NewProductConverter()

	entity, err := conv.ToEntity(&ProductRedisModel{ID: "p1", Name: "Widget", Price: "not-a-number"})
	require.Error(t, err)
	assert.Nil(t, entity)
}
