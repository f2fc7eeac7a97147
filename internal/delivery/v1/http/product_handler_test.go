package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type fakeProductUC struct {
	saveFn   func(ctx context.Context, req *usecase.SaveProductReq) (*usecase.SaveProductRes, error)
	getFn    func(ctx context.Context, id string) (*domain.Product, error)
	listFn   func(ctx context.Context) ([]domain.Product, error)
	deleteFn func(ctx context.Context, id string) error
	attachFn func(ctx context.Context, req *usecase.AttachImageReq) (string, error)
}

func (f *fakeProductUC) SaveProduct(ctx context.Context, req *usecase.SaveProductReq) (*usecase.SaveProductRes, error) {
	return f.saveFn(ctx, req)
}

func (f *fakeProductUC) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return f.getFn(ctx, id)
}

func (f *fakeProductUC) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return f.listFn(ctx)
}

func (f *fakeProductUC) DeleteProduct(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeProductUC) AttachImage(ctx context.Context, req *usecase.AttachImageReq) (string, error) {
	return f.attachFn(ctx, req)
}

func newTestRouter(uc usecase.ProductUC) *chi.Mux {
	mux := chi.NewRouter()
	NewRouter(mux, nopLogger{}).Init(uc)
	return mux
}

func testProduct(id string) *domain.Product {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Product{
		ID:        id,
		Name:      "Widget",
		Price:     decimal.New(999, -2),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSaveProduct_Created(t *testing.T) {
	uc := &fakeProductUC{
		saveFn: func(ctx context.Context, req *usecase.SaveProductReq) (*usecase.SaveProductRes, error) {
			assert.Equal(t, "p1", req.ID)
			assert.Equal(t, "Widget", req.Name)
			require.NotNil(t, req.Price)
			assert.Equal(t, 9.99, *req.Price)
			return usecase.NewSaveProductRes(testProduct(req.ID), "event-1"), nil
		},
	}

	body := `{"id": "p1", "name": "Widget", "price": 9.99}`
	rec := httptest.NewRecorder()
	newTestRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/products/", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var res struct {
		Product ProductResponse `json:"product"`
		EventID string          `json:"event_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "p1", res.Product.ID)
	assert.Equal(t, "9.99", res.Product.Price)
	assert.Equal(t, "event-1", res.EventID)
}

func TestSaveProduct_ValidationErrorsListed(t *testing.T) {
	uc := &fakeProductUC{
		saveFn: func(ctx context.Context, req *usecase.SaveProductReq) (*usecase.SaveProductRes, error) {
			return nil, e.Wrap("ProductUseCase.SaveProduct", domain.ValidationErrors{
				e.ErrProductNameRequired,
				e.ErrPriceNonNegative,
			})
		},
	}

	body := `{"id": "p1", "name": "", "price": -1}`
	rec := httptest.NewRecorder()
	newTestRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/products/", strings.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var res ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, []string{
		"product name is required",
		"price must be a non-negative finite number",
	}, res.Errors)
}

func TestSaveProduct_MalformedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&fakeProductUC{}).ServeHTTP(rec,
		httptest.NewRequest(http.MethodPost, "/api/v1/products/", strings.NewReader("{not json")))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var res ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, e.ErrInvalidRequestBody.Error(), res.Message)
}

func TestGetProduct_OK(t *testing.T) {
	uc := &fakeProductUC{
		getFn: func(ctx context.Context, id string) (*domain.Product, error) {
			assert.Equal(t, "p1", id)
			return testProduct(id), nil
		},
	}

	rec := httptest.NewRecorder()
	newTestRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/p1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var res ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "p1", res.ID)
	assert.Equal(t, "Widget", res.Name)
	assert.Equal(t, "9.99", res.Price)
	assert.Nil(t, res.Description)
}

func TestGetProduct_NotFound(t *testing.T) {
	uc := &fakeProductUC{
		getFn: func(ctx context.Context, id string) (*domain.Product, error) {
			return nil, e.Wrap("ProductUseCase.GetProduct", e.ErrProductNotFound)
		},
	}

	rec := httptest.NewRecorder()
	newTestRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/missing", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var res ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, e.ErrProductNotFound.Error(), res.Message)
}

func TestListProducts_OK(t *testing.T) {
	uc := &fakeProductUC{
		listFn: func(ctx context.Context) ([]domain.Product, error) {
			return []domain.Product{*testProduct("a"), *testProduct("b")}, nil
		},
	}

	rec := httptest.NewRecorder()
	newTestRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var res []ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res, 2)
	assert.Equal(t, "a", res[0].ID)
	assert.Equal(t, "b", res[1].ID)
}

func TestListProducts_InternalErrorHidesDetails(t *testing.T) {
	uc := &fakeProductUC{
		listFn: func(ctx context.Context) ([]domain.Product, error) {
			return nil, e.Wrap("ProductUseCase.ListProducts", context.DeadlineExceeded)
		},
	}

	rec := httptest.NewRecorder()
	newTestRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var res ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, e.ErrInternalServerError.Error(), res.Message)
	assert.NotContains(t, rec.Body.String(), "deadline")
}

func TestDeleteProduct_NoContent(t *testing.T) {
	deleted := ""
	uc := &fakeProductUC{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}

	rec := httptest.NewRecorder()
	newTestRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/products/p1", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "p1", deleted)
	assert.Empty(t, rec.Body.String())
}

// newMultipartImage пишет в buf multipart-форму с одним файловым полем
// и возвращает значение заголовка Content-Type.
func newMultipartImage(t *testing.T, buf *bytes.Buffer, field, filename string) string {
	t.Helper()

	// Минимальный валидный PNG-заголовок, чтобы DetectContentType дал image/png.
	pngHeader := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = io.Copy(part, bytes.NewReader(pngHeader))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return writer.FormDataContentType()
}

func TestAttachImage_Created(t *testing.T) {
	uc := &fakeProductUC{
		attachFn: func(ctx context.Context, req *usecase.AttachImageReq) (string, error) {
			assert.Equal(t, "p1", req.ProductID)
			assert.NotEmpty(t, req.Data)
			return "p1/img.png", nil
		},
	}

	var buf bytes.Buffer
	mw := newMultipartImage(t, &buf, "image", "photo.png")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/p1/image", &buf)
	req.Header.Set("Content-Type", mw)

	rec := httptest.NewRecorder()
	newTestRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var res map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "p1/img.png", res["key"])
}

func TestAttachImage_RequiresMultipart(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/p1/image", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")

	newTestRouter(&fakeProductUC{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var res ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, e.ErrExpectedMultipart.Error(), res.Message)
}

func TestAttachImage_MissingFilePart(t *testing.T) {
	var buf bytes.Buffer
	mw := newMultipartImage(t, &buf, "attachment", "photo.png")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/p1/image", &buf)
	req.Header.Set("Content-Type", mw)

	rec := httptest.NewRecorder()
	newTestRouter(&fakeProductUC{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var res ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, e.ErrNoImage.Error(), res.Message)
}
