package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-api/internal/storage"
	"github.com/carson-networks/budget-api/internal/storage/transaction"
)

type CreateTransaction struct {
	AccountID       uuid.UUID
	CategoryID      uuid.UUID
	Amount          decimal.Decimal
	Description     string
	TransactionDate time.Time

	// CreatedID is set once Perform succeeds.
	CreatedID uuid.UUID
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	account, err := writer.Account.FindByIDForUpdate(ctx, t.AccountID)
	if err != nil {
		return err
	}

	storageCreate := &transaction.TransactionCreate{
		AccountID:       t.AccountID,
		CategoryID:      t.CategoryID,
		Amount:          t.Amount,
		Description:     t.Description,
		TransactionDate: t.TransactionDate,
	}
	id, err := writer.Transaction.Insert(ctx, storageCreate)
	if err != nil {
		return err
	}

	newBalance := account.Balance.Add(t.Amount)
	err = writer.Account.UpdateBalance(ctx, t.AccountID, newBalance)
	if err != nil {
		return err
	}

	t.CreatedID = id
	return nil
}
