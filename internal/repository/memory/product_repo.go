package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
)

// Проверка реализации контракта на этапе компиляции.
var _ usecase.ProductRepository = (*ProductRepo)(nil)

// ProductRepo — потокобезопасная реализация репозитория продуктов в памяти.
// Используется в тестах и при локальном запуске без PostgreSQL.
type ProductRepo struct {
	mu       sync.RWMutex
	products map[string]domain.Product
}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{
		products: make(map[string]domain.Product),
	}
}

// GetByID возвращает продукт по ID или (nil, nil), если его нет.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}

	return &product, nil
}

// List возвращает все продукты, отсортированные по времени создания и ID.
func (r *ProductRepo) List(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.products))
	for _, product := range r.products {
		result = append(result, product)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// Save создаёт или заменяет продукт по ID.
func (r *ProductRepo) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[product.ID] = *product

	saved := r.products[product.ID]
	return &saved, nil
}

// Delete идемпотентно удаляет продукт.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.products, id)
	return nil
}
