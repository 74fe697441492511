package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/storage"
	"github.com/carson-networks/budget-api/internal/storage/transaction"
)

// UpdateTransaction rewrites the set fields of a transaction and moves its
// amount between account balances when the amount or account changes.
type UpdateTransaction struct {
	ID     uuid.UUID
	Update transaction.TransactionUpdate
}

func (u *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transaction.FindByIDForUpdate(ctx, u.ID)
	if err != nil {
		return err
	}

	newAccountID := u.Update.AccountID.GetOr(existing.AccountID)
	newAmount := u.Update.Amount.GetOr(existing.Amount)

	err = applyBalanceChanges(ctx, writer,
		balanceChange{accountID: existing.AccountID, delta: existing.Amount.Neg()},
		balanceChange{accountID: newAccountID, delta: newAmount},
	)
	if err != nil {
		return err
	}

	return writer.Transaction.Update(ctx, u.ID, &u.Update)
}
