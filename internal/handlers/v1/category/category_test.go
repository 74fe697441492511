package category

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-api/internal/service"
)

type mockCategoryService struct {
	mock.Mock
}

func (m *mockCategoryService) CreateCategory(ctx context.Context, name string) (uuid.UUID, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockCategoryService) ListCategories(ctx context.Context) ([]service.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]service.Category)
	return categories, args.Error(1)
}

func newTestAPI(t *testing.T, svc *mockCategoryService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewHandler(svc).Register(api)
	return api
}

func TestHTTP_CreateCategory(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	mockSvc := new(mockCategoryService)
	mockSvc.On("CreateCategory", mock.Anything, "Groceries").Return(id, nil)

	resp := newTestAPI(t, mockSvc).Post("/v1/category", map[string]any{"name": "Groceries"})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, id.String(), body.ID)
}

func TestHTTP_CreateCategory_Errors(t *testing.T) {
	mockSvc := new(mockCategoryService)
	mockSvc.On("CreateCategory", mock.Anything, "Duplicate").Return(uuid.Nil, errors.New("unique violation"))
	api := newTestAPI(t, mockSvc)

	resp := api.Post("/v1/category", map[string]any{"name": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	resp = api.Post("/v1/category", map[string]any{"name": "Duplicate"})
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestHTTP_ListCategories(t *testing.T) {
	categories := []service.Category{
		{ID: uuid.Must(uuid.NewV4()), Name: "Bills", CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
	mockSvc := new(mockCategoryService)
	mockSvc.On("ListCategories", mock.Anything).Return(categories, nil)

	resp := newTestAPI(t, mockSvc).Get("/v1/categories")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Categories []Category `json:"categories"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []Category{
		{ID: categories[0].ID.String(), Name: "Bills", CreatedAt: "2025-01-02T03:04:05Z"},
	}, body.Categories)
}
