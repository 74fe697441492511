package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-api/internal/storage/account"
	"github.com/carson-networks/budget-api/internal/storage/category"
	"github.com/carson-networks/budget-api/internal/storage/transaction"
)

type Reader struct {
	Accounts     *account.Reader
	Categories   *category.Reader
	Transactions *transaction.Reader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Accounts:     account.NewReader(exec),
		Categories:   category.NewReader(exec),
		Transactions: transaction.NewReader(exec),
	}
}
