package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/infrastructure"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductUseCase реализует бизнес-логику каталога продуктов.
type ProductUseCase struct {
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	dbPool      transaction.Transactional
	cacheRepo   CacheRepository
	imageRepo   ImageRepository
	logger      logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	cacheRepo CacheRepository,
	imageRepo ImageRepository,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		dbPool:      dbPool,
		cacheRepo:   cacheRepo,
		imageRepo:   imageRepo,
		logger:      logger,
	}
}

// SaveProduct валидирует вход, создаёт или заменяет продукт по ID и в той же
// транзакции кладёт событие в outbox. Если клиент не прислал ID, сервер
// назначает его сам.
func (p *ProductUseCase) SaveProduct(ctx context.Context, req *SaveProductReq) (*SaveProductRes, error) {
	const op = "ProductUseCase.SaveProduct"

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	product, err := domain.CreateProduct(domain.ProductInput{
		ID:          id,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
	}, time.Now())
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	saved, err := p.productRepo.Save(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	event, err := p.createOutboxEvent(ctx, ProductSaved, saved.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	p.invalidateCache(ctx, saved.ID)

	return NewSaveProductRes(saved, event.EventID), nil
}

// GetProduct возвращает продукт по ID: сперва из кэша, затем из хранилища.
// Отсутствие продукта на этом уровне превращается в e.ErrProductNotFound.
func (p *ProductUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	const op = "ProductUseCase.GetProduct"

	cached, err := p.cacheRepo.GetProducts(ctx, []string{id})
	if err == nil {
		if product, ok := cached[id]; ok {
			return &product, nil
		}
	}

	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if product == nil {
		return nil, e.Wrap(op, e.ErrProductNotFound)
	}

	// Фоновое добавление продукта в кэш
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := p.cacheRepo.SetProducts(bgCtx, []domain.Product{*product}); err != nil {
			p.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
		}
	}()

	return product, nil
}

// ListProducts возвращает все продукты каталога.
func (p *ProductUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "ProductUseCase.ListProducts"

	products, err := p.productRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// DeleteProduct идемпотентно удаляет продукт и кладёт событие в outbox.
// Удаление несуществующего ID — успешный no-op.
func (p *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	const op = "ProductUseCase.DeleteProduct"

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if err = p.productRepo.Delete(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	if _, err = p.createOutboxEvent(ctx, ProductDeleted, id); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	p.invalidateCache(ctx, id)

	return nil
}

// AttachImage сохраняет изображение существующего продукта в MinIO
// и возвращает ключ объекта.
func (p *ProductUseCase) AttachImage(ctx context.Context, req *AttachImageReq) (string, error) {
	const op = "ProductUseCase.AttachImage"

	product, err := p.GetProduct(ctx, req.ProductID)
	if err != nil {
		return "", e.Wrap(op, err)
	}

	ext, err := infrastructure.GetExtensionFromMIME(req.MimeType)
	if err != nil {
		return "", e.Wrap(op, err)
	}

	imageID := uuid.NewString()
	objKey := fmt.Sprintf("%s/%s.%s", product.ID, imageID, ext)
	image := domain.NewImage(imageID, "", objKey, req.Data, &req.Size, &req.MimeType)

	key, err := p.imageRepo.Upload(ctx, image)
	if err != nil {
		return "", e.Wrap(op, err)
	}

	return key, nil
}

// createOutboxEvent формирует событие изменения продукта и сохраняет его
// в текущей транзакции.
func (p *ProductUseCase) createOutboxEvent(ctx context.Context, eventType OutboxEventType, productID string) (*OutboxEvent, error) {
	eventID := uuid.NewString()
	payload, err := json.Marshal(ProductEventPayload{
		EventID:    eventID,
		EventType:  string(eventType),
		ProductID:  productID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	return p.outboxRepo.Create(ctx, &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		ProductID: productID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	})
}

// invalidateCache удаляет продукт из кэша, ошибки только логируются.
func (p *ProductUseCase) invalidateCache(ctx context.Context, id string) {
	if err := p.cacheRepo.DeleteProducts(ctx, []string{id}); err != nil {
		p.logger.Warnf("Failed to invalidate product cache: %v", err)
	}
}
