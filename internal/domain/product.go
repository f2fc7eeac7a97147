package domain

import (
	"math"
	"strings"
	"time"

	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/shopspring/decimal"
)

// ProductInput — непровалидированные данные для создания продукта.
// Отсутствующие опциональные поля передаются как nil.
type ProductInput struct {
	ID          string
	Name        string
	Price       *float64
	Description *string
	Category    *string
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}

// Product описывает продукт каталога. Создаётся только через CreateProduct
// и после создания не меняется: «обновление» — это новая сущность с тем же ID,
// сохранённая поверх старой.
type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal // денежная сумма; нормализация в копейки — забота хранилища
	Description *string
	Category    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateProduct валидирует вход и собирает сущность продукта.
// Проверяются все правила сразу: при нарушениях возвращается полный список
// ошибок ValidationErrors, сущность при этом не создаётся.
// now используется только как значение по умолчанию для меток времени.
func CreateProduct(in ProductInput, now time.Time) (*Product, error) {
	var errs ValidationErrors

	if strings.TrimSpace(in.ID) == "" {
		errs = append(errs, e.ErrProductIDRequired)
	}

	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, e.ErrProductNameRequired)
	}

	price := decimal.Zero
	if in.Price == nil || math.IsNaN(*in.Price) || math.IsInf(*in.Price, 0) || *in.Price < 0 {
		errs = append(errs, e.ErrPriceNonNegative)
	} else {
		price = decimal.NewFromFloat(*in.Price)
	}

	// Метки времени умолчаются независимо: createdAt — от момента вызова,
	// updatedAt — от createdAt, но присланное значение всегда в приоритете.
	createdAt := now
	if in.CreatedAt != nil && !in.CreatedAt.IsZero() {
		createdAt = *in.CreatedAt
	}

	updatedAt := createdAt
	if in.UpdatedAt != nil && !in.UpdatedAt.IsZero() {
		updatedAt = *in.UpdatedAt
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &Product{
		ID:          in.ID,
		Name:        in.Name,
		Price:       price,
		Description: copyString(in.Description),
		Category:    copyString(in.Category),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// copyString копирует значение, чтобы сущность не делила память с входом.
func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
