package converter

import (
	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/shopspring/decimal"
)

// centsInUnit — копеек в одной денежной единице.
const centsInUnit = 100

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
// Каждый путь чтения проходит через ToEntity, каждый путь записи — через ToModel.
type ProductConverter interface {
	ToModel(entity *domain.Product) (*ProductModel, error)
	ToEntity(model *ProductModel) *domain.Product
}

type productConverter struct{}

func NewProductConverter() ProductConverter {
	return productConverter{}
}

// ToModel нормализует цену в копейки. Цена с точностью больше двух знаков
// после запятой отвергается с e.ErrPricePrecision: адаптер не имеет права
// молча округлять денежные суммы.
func (productConverter) ToModel(entity *domain.Product) (*ProductModel, error) {
	if entity.Price.Exponent() < -2 {
		return nil, e.ErrPricePrecision
	}

	return &ProductModel{
		ID:          entity.ID,
		Name:        entity.Name,
		PriceCents:  entity.Price.Mul(decimal.NewFromInt(centsInUnit)).IntPart(),
		Description: entity.Description,
		Category:    entity.Category,
		CreatedAt:   entity.CreatedAt,
		UpdatedAt:   entity.UpdatedAt,
	}, nil
}

func (productConverter) ToEntity(model *ProductModel) *domain.Product {
	return &domain.Product{
		ID:          model.ID,
		Name:        model.Name,
		Price:       decimal.New(model.PriceCents, -2),
		Description: model.Description,
		Category:    model.Category,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// OutboxEventConverter преобразует события outbox между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(event *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type outboxEventConverter struct{}

func NewOutboxEventConverter() OutboxEventConverter {
	return outboxEventConverter{}
}

func (outboxEventConverter) ToModel(event *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          event.ID,
		EventID:     event.EventID,
		EventType:   string(event.EventType),
		ProductID:   event.ProductID,
		Payload:     event.Payload,
		Status:      string(event.Status),
		CreatedAt:   event.CreatedAt,
		ProcessedAt: event.ProcessedAt,
	}
}

func (outboxEventConverter) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		ProductID:   model.ProductID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c outboxEventConverter) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	events := make([]*usecase.OutboxEvent, len(models))
	for i, model := range models {
		events[i] = c.ToEntity(model)
	}
	return events
}
