package service

import (
	"github.com/carson-networks/budget-api/internal/cache"
	"github.com/carson-networks/budget-api/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Account     *AccountService
	Category    *CategoryService
}

// NewService wires the services to storage reads and operator writes.
// transactions may be nil when no Redis server is configured.
func NewService(store *storage.Storage, operator actionProcessor, transactions *cache.ViewCache[Transaction]) *Service {
	var txCache transactionCache
	if transactions != nil {
		txCache = transactions
	}

	return &Service{
		Transaction: NewTransactionService(store.Reader.Transactions, operator, txCache),
		Account:     NewAccountService(store.Reader.Accounts, operator),
		Category:    NewCategoryService(store.Reader.Categories, operator),
	}
}
