package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-api/internal/storage"
	"github.com/carson-networks/budget-api/internal/storage/account"
)

type CreateAccount struct {
	Name            string
	Type            account.AccountType
	SubType         string
	Balance         decimal.Decimal
	StartingBalance decimal.Decimal

	CreatedID uuid.UUID
}

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Account.Create(ctx, &account.AccountCreate{
		Name:            c.Name,
		Type:            c.Type,
		SubType:         c.SubType,
		Balance:         c.Balance,
		StartingBalance: c.StartingBalance,
	})
	if err != nil {
		return err
	}

	c.CreatedID = id
	return nil
}
