package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Внутренние ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")

	// Ошибки валидации продукта (текст сообщений — часть контракта,
	// клиенты и тесты сверяются с ним дословно)
	ErrProductIDRequired   = fmt.Errorf("product id is required")
	ErrProductNameRequired = fmt.Errorf("product name is required")
	ErrPriceNonNegative    = fmt.Errorf("price must be a non-negative finite number")

	// Ошибки трансляции на границе хранилища
	ErrPricePrecision = fmt.Errorf("price must have at most 2 decimal places")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")

	// 400 Bad Request
	ErrInvalidRequestBody   = fmt.Errorf("invalid request body")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrNoImage              = fmt.Errorf("no image provided")
	ErrFileTooLarge         = fmt.Errorf("file too large")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
