package actions

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/storage"
	"github.com/carson-networks/budget-api/internal/storage/transaction"
)

// DeleteTransaction removes a transaction and reverses its effect on the
// account balance. A missing transaction is a no-op.
type DeleteTransaction struct {
	ID uuid.UUID
}

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transaction.FindByIDForUpdate(ctx, d.ID)
	if errors.Is(err, transaction.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := writer.Transaction.Delete(ctx, d.ID); err != nil {
		return err
	}

	return applyBalanceChanges(ctx, writer, balanceChange{
		accountID: existing.AccountID,
		delta:     existing.Amount.Neg(),
	})
}
