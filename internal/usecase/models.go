package usecase

import (
	"time"

	"github.com/DRSN-tech/catalog-service/internal/domain"
)

// PRODUCT USECASE

// SaveProductReq — запрос на создание или замену продукта.
type SaveProductReq struct {
	ID          string
	Name        string
	Price       *float64
	Description *string
	Category    *string
}

// SaveProductRes — результат сохранения: сохранённая сущность и ID события outbox.
type SaveProductRes struct {
	Product *domain.Product
	EventID string
}

// AttachImageReq — запрос на загрузку изображения продукта.
type AttachImageReq struct {
	ProductID string
	Data      []byte
	MimeType  string
	Size      int64
	Name      string // оригинальное имя файла (для логов)
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	ProductSaved   OutboxEventType = "product_saved"
	ProductDeleted OutboxEventType = "product_deleted"
)

// OutboxEvent — запись transactional outbox: изменение продукта, ожидающее
// публикации в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     string // uuid
	EventType   OutboxEventType
	ProductID   string
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// ProductEventPayload — тело события, публикуемого в Kafka (JSON).
type ProductEventPayload struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	ProductID  string    `json:"product_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// INFRASTRUCTURE

type WriteRawMessageReq struct {
	ProductID string
	Payload   []byte
}

// MAPPERS

func NewSaveProductReq(id, name string, price *float64, description, category *string) *SaveProductReq {
	return &SaveProductReq{
		ID:          id,
		Name:        name,
		Price:       price,
		Description: description,
		Category:    category,
	}
}

func NewSaveProductRes(product *domain.Product, eventID string) *SaveProductRes {
	return &SaveProductRes{
		Product: product,
		EventID: eventID,
	}
}

func NewAttachImageReq(productID string, data []byte, mimeType string, size int64, name string) *AttachImageReq {
	return &AttachImageReq{
		ProductID: productID,
		Data:      data,
		MimeType:  mimeType,
		Size:      size,
		Name:      name,
	}
}

func NewWriteRawMessageReq(productID string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		ProductID: productID,
		Payload:   payload,
	}
}
