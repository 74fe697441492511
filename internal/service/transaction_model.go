package service

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-api/internal/storage/transaction"
)

// AccountRef is the account a transaction is booked against.
type AccountRef struct {
	ID   uuid.UUID
	Name string
}

// CategoryRef is the category a transaction is filed under.
type CategoryRef struct {
	ID   uuid.UUID
	Name string
}

// Transaction is a transaction hydrated with its account and category.
type Transaction struct {
	ID              uuid.UUID
	Account         AccountRef
	Category        CategoryRef
	Amount          decimal.Decimal
	Description     string
	TransactionDate time.Time
	CreatedAt       time.Time
}

type TransactionCreate struct {
	AccountID       uuid.UUID
	CategoryID      uuid.UUID
	Amount          decimal.Decimal
	Description     string
	TransactionDate time.Time
}

// TransactionUpdate changes the set fields of transaction ID.
type TransactionUpdate struct {
	ID              uuid.UUID
	AccountID       omit.Val[uuid.UUID]
	CategoryID      omit.Val[uuid.UUID]
	Amount          omit.Val[decimal.Decimal]
	Description     omit.Val[string]
	TransactionDate omit.Val[time.Time]
}

// CategoryTransactions is one group of a grouped listing.
type CategoryTransactions struct {
	Category     CategoryRef
	Total        decimal.Decimal
	Transactions []Transaction
}

func transactionFromStorage(row *transaction.TransactionDetail) Transaction {
	return Transaction{
		ID: row.ID,
		Account: AccountRef{
			ID:   row.AccountID,
			Name: row.AccountName,
		},
		Category: CategoryRef{
			ID:   row.CategoryID,
			Name: row.CategoryName,
		},
		Amount:          row.Amount,
		Description:     row.Description,
		TransactionDate: row.TransactionDate,
		CreatedAt:       row.CreatedAt,
	}
}
