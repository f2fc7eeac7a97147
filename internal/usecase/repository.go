package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-service/internal/domain"
)

// ProductRepository — контракт хранилища продуктов. Единственная точка,
// через которую остальной код достигает сохранённых сущностей.
//
// Семантика отсутствия: GetByID возвращает (nil, nil), если продукта нет, —
// это нормальный исход, а не ошибка. Delete несуществующего ID — успешный no-op.
// Любые другие сбои бэкенда поднимаются наружу без преобразования.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	GetProducts(ctx context.Context, ids []string) (map[string]domain.Product, error)
	SetProducts(ctx context.Context, products []domain.Product) error
	DeleteProducts(ctx context.Context, ids []string) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}
