package converter

import (
	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/shopspring/decimal"
)

// ProductConverter преобразует сущности Product между domain и моделью Redis.
type ProductConverter interface {
	ToRedisModel(entity *domain.Product) *ProductRedisModel
	ToEntity(model *ProductRedisModel) (*domain.Product, error)
}

type productConverter struct{}

func NewProductConverter() ProductConverter {
	return productConverter{}
}

func (productConverter) ToRedisModel(entity *domain.Product) *ProductRedisModel {
	return &ProductRedisModel{
		ID:          entity.ID,
		Name:        entity.Name,
		Price:       entity.Price.String(),
		Description: entity.Description,
		Category:    entity.Category,
		CreatedAt:   entity.CreatedAt,
		UpdatedAt:   entity.UpdatedAt,
	}
}

// ToEntity возвращает ошибку, если закэшированная цена не парсится:
// такая запись считается испорченной и игнорируется на уровне репозитория.
func (productConverter) ToEntity(model *ProductRedisModel) (*domain.Product, error) {
	price, err := decimal.NewFromString(model.Price)
	if err != nil {
		return nil, err
	}

	return &domain.Product{
		ID:          model.ID,
		Name:        model.Name,
		Price:       price,
		Description: model.Description,
		Category:    model.Category,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}, nil
}
