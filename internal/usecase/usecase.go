package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-service/internal/domain"
)

type ProductUC interface {
	SaveProduct(ctx context.Context, req *SaveProductReq) (*SaveProductRes, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	AttachImage(ctx context.Context, req *AttachImageReq) (string, error)
}
