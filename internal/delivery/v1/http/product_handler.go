package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

type saveProductRequest struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
}

// saveProduct
//
//	@Summary		Создание или замена товара
//	@Description	Создаёт товар или заменяет существующий по id (upsert). Если id не передан, сервер назначает его сам.
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			product	body		saveProductRequest			true	"Данные товара"
//	@Success		201		{object}	map[string]interface{}		"Успешное сохранение"
//	@Failure		400		{object}	ValidationErrorResponse	"Ошибки валидации"
//	@Router			/products [post]
func (p *ProductHandler) saveProduct(w http.ResponseWriter, r *http.Request) {
	var req saveProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrInvalidRequestBody.Error(), err.Error())
		WriteError(w, e.ErrInvalidRequestBody)
		return
	}

	res, err := p.productUsecase.SaveProduct(r.Context(),
		usecase.NewSaveProductReq(req.ID, req.Name, req.Price, req.Description, req.Category))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"product":  ToProductResponse(res.Product),
		"event_id": res.EventID,
	})
}

// getProduct
//
//	@Summary	Получение товара по id
//	@Tags		products
//	@Produce	json
//	@Param		id	path		string	true	"ID товара"
//	@Success	200	{object}	ProductResponse
//	@Failure	404	{object}	ErrorResponse	"Товар не найден"
//	@Router		/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := p.productUsecase.GetProduct(r.Context(), id)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, ToProductResponse(product))
}

// listProducts
//
//	@Summary	Список всех товаров каталога
//	@Tags		products
//	@Produce	json
//	@Success	200	{array}	ProductResponse
//	@Router		/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := p.productUsecase.ListProducts(r.Context())
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	result := make([]*ProductResponse, len(products))
	for i := range products {
		result[i] = ToProductResponse(&products[i])
	}

	WriteSuccess(w, http.StatusOK, result)
}

// deleteProduct
//
//	@Summary		Удаление товара
//	@Description	Идемпотентно: повторное удаление того же id — тоже 204.
//	@Tags			products
//	@Param			id	path	string	true	"ID товара"
//	@Success		204
//	@Router			/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := p.productUsecase.DeleteProduct(r.Context(), id); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// attachImage
//
//	@Summary	Загрузка изображения товара
//	@Tags		products
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		id		path		string	true	"ID товара"
//	@Param		image	formData	file	true	"Изображение (jpeg/png/webp)"
//	@Success	201		{object}	map[string]interface{}	"Ключ сохранённого объекта"
//	@Failure	400		{object}	ErrorResponse
//	@Router		/products/{id}/image [post]
func (p *ProductHandler) attachImage(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 16 << 20
		maxMemory           = 8 << 20
		maxFileSize         = 15 << 20
	)

	id := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrExpectedMultipart.Error(), r.Header.Get("Content-Type"))
		WriteError(w, e.ErrExpectedMultipart)
		return
	}

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrInvalidRequestBody.Error(), err.Error())
		WriteError(w, e.ErrInvalidRequestBody)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, e.ErrNoImage)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		WriteError(w, e.ErrInternalServerError)
		return
	}
	if int64(len(data)) > maxFileSize {
		WriteError(w, e.ErrFileTooLarge)
		return
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])

	key, err := p.productUsecase.AttachImage(r.Context(),
		usecase.NewAttachImageReq(id, data, mimeType, int64(len(data)), header.Filename))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"key": key,
	})
}
