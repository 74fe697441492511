package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/storage"
	"github.com/carson-networks/budget-api/internal/storage/category"
)

type CreateCategory struct {
	Name string

	CreatedID uuid.UUID
}

func (c *CreateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Category.Create(ctx, &category.CategoryCreate{Name: c.Name})
	if err != nil {
		return err
	}

	c.CreatedID = id
	return nil
}
