package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/operator/actions"
	"github.com/carson-networks/budget-api/internal/storage/category"
)

type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

type categoryReader interface {
	List(ctx context.Context) ([]*category.Category, error)
}

// CategoryService handles category business logic.
type CategoryService struct {
	reader   categoryReader
	operator actionProcessor
}

func NewCategoryService(reader categoryReader, operator actionProcessor) *CategoryService {
	return &CategoryService{
		reader:   reader,
		operator: operator,
	}
}

func (s *CategoryService) CreateCategory(ctx context.Context, name string) (uuid.UUID, error) {
	action := &actions.CreateCategory{Name: name}
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.CreatedID, nil
}

// ListCategories returns every category ordered by name.
func (s *CategoryService) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.reader.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]Category, len(rows))
	for i, row := range rows {
		result[i] = Category{
			ID:        row.ID,
			Name:      row.Name,
			CreatedAt: row.CreatedAt,
		}
	}
	return result, nil
}
