package transaction

import (
	"errors"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when no transaction row matches the requested id.
var ErrNotFound = errors.New("transaction not found")

// Transaction represents a transaction record.
type Transaction struct {
	ID              uuid.UUID       `db:"id"`
	AccountID       uuid.UUID       `db:"account_id"`
	CategoryID      uuid.UUID       `db:"category_id"`
	Amount          decimal.Decimal `db:"amount"`
	Description     string          `db:"description"`
	TransactionDate time.Time       `db:"txn_date"`
	CreatedAt       time.Time       `db:"created_at"`
}

// TransactionDetail is a transaction joined with its account and category.
type TransactionDetail struct {
	ID              uuid.UUID       `db:"id"`
	AccountID       uuid.UUID       `db:"account_id"`
	AccountName     string          `db:"account_name"`
	CategoryID      uuid.UUID       `db:"category_id"`
	CategoryName    string          `db:"category_name"`
	Amount          decimal.Decimal `db:"amount"`
	Description     string          `db:"description"`
	TransactionDate time.Time       `db:"txn_date"`
	CreatedAt       time.Time       `db:"created_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	AccountID       uuid.UUID
	CategoryID      uuid.UUID
	Amount          decimal.Decimal
	Description     string
	TransactionDate time.Time // defaults to today if zero
}

// TransactionUpdate carries the columns to change. Unset fields are left as stored.
type TransactionUpdate struct {
	AccountID       omit.Val[uuid.UUID]
	CategoryID      omit.Val[uuid.UUID]
	Amount          omit.Val[decimal.Decimal]
	Description     omit.Val[string]
	TransactionDate omit.Val[time.Time]
}

// IsEmpty reports whether the update changes nothing.
func (u *TransactionUpdate) IsEmpty() bool {
	return u.AccountID.IsUnset() &&
		u.CategoryID.IsUnset() &&
		u.Amount.IsUnset() &&
		u.Description.IsUnset() &&
		u.TransactionDate.IsUnset()
}

// TransactionFilter specifies filters for listing transactions.
// Date bounds are inclusive and compared by calendar day.
type TransactionFilter struct {
	AccountID *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}
