package memory

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(t *testing.T, id string, createdAt time.Time) *domain.Product {
	t.Helper()

	price := 9.99
	product, err := domain.CreateProduct(domain.ProductInput{
		ID:        id,
		Name:      "Widget " + id,
		Price:     &price,
		CreatedAt: &createdAt,
	}, createdAt)
	require.NoError(t, err)

	return product
}

func TestProductRepo_SaveThenGetByID(t *testing.T) {
	repo := NewProductRepo()
	ctx := context.Background()

	product := newProduct(t, "p1", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	saved, err := repo.Save(ctx, product)
	require.NoError(t, err)
	assert.Equal(t, product, saved)

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, product, got)
}

func TestProductRepo_GetByID_Absent(t *testing.T) {
	repo := NewProductRepo()

	got, err := repo.GetByID(context.Background(), "missing")
	require.NoError(t, err, "absence is not an error")
	assert.Nil(t, got)
}

func TestProductRepo_Save_Upsert(t *testing.T) {
	repo := NewProductRepo()
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	_, err := repo.Save(ctx, newProduct(t, "p1", now))
	require.NoError(t, err)

	price := 19.99
	updated, err := domain.CreateProduct(domain.ProductInput{
		ID:        "p1",
		Name:      "Widget v2",
		Price:     &price,
		CreatedAt: &now,
	}, now)
	require.NoError(t, err)

	_, err = repo.Save(ctx, updated)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", got.Name)
	assert.True(t, got.Price.Equal(decimal.NewFromFloat(19.99)))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProductRepo_List_Order(t *testing.T) {
	repo := NewProductRepo()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for _, p := range []*domain.Product{
		newProduct(t, "b", base.Add(time.Hour)),
		newProduct(t, "c", base),
		newProduct(t, "a", base),
	} {
		_, err := repo.Save(ctx, p)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)

	ids := make([]string, 0, len(all))
	for _, p := range all {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"a", "c", "b"}, ids)
}

func TestProductRepo_List_Empty(t *testing.T) {
	repo := NewProductRepo()

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProductRepo_Delete_Idempotent(t *testing.T) {
	repo := NewProductRepo()
	ctx := context.Background()

	_, err := repo.Save(ctx, newProduct(t, "p1", time.Now()))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "p1"))
	require.NoError(t, repo.Delete(ctx, "p1"), "повторное удаление не должно падать")

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductRepo_GetByID_ReturnsCopy(t *testing.T) {
	repo := NewProductRepo()
	ctx := context.Background()

	_, err := repo.Save(ctx, newProduct(t, "p1", time.Now()))
	require.NoError(t, err)

	first, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	first.Name = "mutated"

	second, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", second.Name)
}
