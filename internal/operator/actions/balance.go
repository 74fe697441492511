package actions

import (
	"context"
	"sort"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-api/internal/storage"
)

type balanceChange struct {
	accountID uuid.UUID
	delta     decimal.Decimal
}

// applyBalanceChanges adds each delta to its account balance. Accounts are
// locked in id order so concurrent writers cannot deadlock.
func applyBalanceChanges(ctx context.Context, writer *storage.Writer, changes ...balanceChange) error {
	totals := make(map[uuid.UUID]decimal.Decimal, len(changes))
	for _, change := range changes {
		totals[change.accountID] = totals[change.accountID].Add(change.delta)
	}

	accountIDs := make([]uuid.UUID, 0, len(totals))
	for id := range totals {
		accountIDs = append(accountIDs, id)
	}
	sort.Slice(accountIDs, func(i, j int) bool {
		return accountIDs[i].String() < accountIDs[j].String()
	})

	for _, id := range accountIDs {
		delta := totals[id]
		if delta.IsZero() {
			continue
		}

		account, err := writer.Account.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := writer.Account.UpdateBalance(ctx, id, account.Balance.Add(delta)); err != nil {
			return err
		}
	}
	return nil
}
