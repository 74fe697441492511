package service

import (
	"context"
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-api/internal/operator/actions"
	"github.com/carson-networks/budget-api/internal/storage/transaction"
)

type transactionReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*transaction.TransactionDetail, error)
	List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.TransactionDetail, error)
}

type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// transactionCache is a versioned read-through cache. Get reports the entry
// version, SetIfVersion only stores when that version is still current and
// Invalidate bumps it.
type transactionCache interface {
	Get(ctx context.Context, id string) (*Transaction, int64, bool)
	SetIfVersion(ctx context.Context, id string, value *Transaction, version int64)
	Invalidate(ctx context.Context, id string)
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (*Transaction, int64, bool) {
	return nil, 0, false
}

func (noopCache) SetIfVersion(context.Context, string, *Transaction, int64) {}

func (noopCache) Invalidate(context.Context, string) {}

// TransactionService handles transaction business logic.
type TransactionService struct {
	reader   transactionReader
	operator actionProcessor
	cache    transactionCache
}

// NewTransactionService creates a new TransactionService. A nil cache disables caching.
func NewTransactionService(reader transactionReader, operator actionProcessor, cache transactionCache) *TransactionService {
	if cache == nil {
		cache = noopCache{}
	}
	return &TransactionService{
		reader:   reader,
		operator: operator,
		cache:    cache,
	}
}

// CreateTransaction books a new transaction and returns its ID.
func (s *TransactionService) CreateTransaction(ctx context.Context, create TransactionCreate) (uuid.UUID, error) {
	action := &actions.CreateTransaction{
		AccountID:       create.AccountID,
		CategoryID:      create.CategoryID,
		Amount:          create.Amount,
		Description:     create.Description,
		TransactionDate: create.TransactionDate,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, fromStorage(err)
	}
	return action.CreatedID, nil
}

func (s *TransactionService) UpdateTransaction(ctx context.Context, update TransactionUpdate) error {
	action := &actions.UpdateTransaction{
		ID: update.ID,
		Update: transaction.TransactionUpdate{
			AccountID:       update.AccountID,
			CategoryID:      update.CategoryID,
			Amount:          update.Amount,
			Description:     update.Description,
			TransactionDate: update.TransactionDate,
		},
	}
	err := s.operator.Process(ctx, action)
	s.cache.Invalidate(ctx, update.ID.String())
	return fromStorage(err)
}

// GetTransaction returns the hydrated transaction, reading through the cache.
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	cached, version, ok := s.cache.Get(ctx, id.String())
	if ok {
		return cached, nil
	}

	row, err := s.reader.FindByID(ctx, id)
	if err != nil {
		return nil, fromStorage(err)
	}

	result := transactionFromStorage(row)
	s.cache.SetIfVersion(ctx, id.String(), &result, version)
	return &result, nil
}

// GetTransactions lists transactions of one account, or of all accounts when accountID is nil.
func (s *TransactionService) GetTransactions(ctx context.Context, accountID *uuid.UUID) ([]Transaction, error) {
	rows, err := s.reader.List(ctx, &transaction.TransactionFilter{AccountID: accountID})
	if err != nil {
		return nil, err
	}

	result := make([]Transaction, len(rows))
	for i, row := range rows {
		result[i] = transactionFromStorage(row)
	}
	return result, nil
}

// GetTransactionsByCategory groups the transactions dated within [start, end]
// by category. A zero start or end leaves that side of the range open.
func (s *TransactionService) GetTransactionsByCategory(ctx context.Context, start, end time.Time) ([]CategoryTransactions, error) {
	filter := &transaction.TransactionFilter{}
	if !start.IsZero() {
		filter.StartDate = &start
	}
	if !end.IsZero() {
		filter.EndDate = &end
	}

	rows, err := s.reader.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	groups := make(map[uuid.UUID]*CategoryTransactions)
	for _, row := range rows {
		group, ok := groups[row.CategoryID]
		if !ok {
			group = &CategoryTransactions{
				Category: CategoryRef{ID: row.CategoryID, Name: row.CategoryName},
				Total:    decimal.Zero,
			}
			groups[row.CategoryID] = group
		}
		group.Total = group.Total.Add(row.Amount)
		group.Transactions = append(group.Transactions, transactionFromStorage(row))
	}

	result := make([]CategoryTransactions, 0, len(groups))
	for _, group := range groups {
		result = append(result, *group)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Category.Name != result[j].Category.Name {
			return result[i].Category.Name < result[j].Category.Name
		}
		return result[i].Category.ID.String() < result[j].Category.ID.String()
	})
	return result, nil
}

// DeleteTransaction removes the transaction. A missing id is not an error.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	err := s.operator.Process(ctx, &actions.DeleteTransaction{ID: id})
	s.cache.Invalidate(ctx, id.String())
	return err
}
