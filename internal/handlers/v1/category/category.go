package category

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/logging"
	"github.com/carson-networks/budget-api/internal/service"
)

// Category is the API response model for a category.
type Category struct {
	ID        string `json:"id" doc:"Category UUID"`
	Name      string `json:"name" doc:"Category name"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

type CreateCategoryInput struct {
	Body struct {
		Name string `json:"name" minLength:"1" maxLength:"100" doc:"Category name, unique"`
	}
}

type CreateCategoryOutput struct {
	Status int
	Body   struct {
		ID string `json:"id" doc:"Created category UUID"`
	}
}

type ListCategoriesOutput struct {
	Body struct {
		Categories []Category `json:"categories" doc:"Every category, ordered by name"`
	}
}

type categoryService interface {
	CreateCategory(ctx context.Context, name string) (uuid.UUID, error)
	ListCategories(ctx context.Context) ([]service.Category, error)
}

// Handler serves POST /v1/category and GET /v1/categories.
type Handler struct {
	CategoryService categoryService
}

func NewHandler(svc categoryService) *Handler {
	return &Handler{CategoryService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-category",
		Method:        http.MethodPost,
		Path:          "/v1/category",
		Summary:       "Create a category",
		Tags:          []string{"Categories"},
		DefaultStatus: http.StatusCreated,
	}, h.create)

	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/categories",
		Summary:     "List categories",
		Tags:        []string{"Categories"},
	}, h.list)
}

func (h *Handler) create(ctx context.Context, input *CreateCategoryInput) (*CreateCategoryOutput, error) {
	logData := logging.GetLogData(ctx)

	id, err := h.CategoryService.CreateCategory(ctx, input.Body.Name)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to create category", err)
	}
	if logData != nil {
		logData.AddData("categoryID", id.String())
	}

	out := &CreateCategoryOutput{Status: http.StatusCreated}
	out.Body.ID = id.String()
	return out, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
	categories, err := h.CategoryService.ListCategories(ctx)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list categories", err)
	}

	out := &ListCategoriesOutput{}
	out.Body.Categories = make([]Category, len(categories))
	for i, c := range categories {
		out.Body.Categories[i] = Category{
			ID:        c.ID.String(),
			Name:      c.Name,
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		}
	}
	return out, nil
}
