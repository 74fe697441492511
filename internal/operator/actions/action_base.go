package actions

import (
	"context"

	"github.com/carson-networks/budget-api/internal/storage"
)

// IAction is a unit of write work performed inside one database transaction.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
