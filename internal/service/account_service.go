package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/operator/actions"
	"github.com/carson-networks/budget-api/internal/storage/account"
)

const defaultAccountLimit = 20

type accountReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error)
	List(ctx context.Context, filter *account.AccountFilter) (*account.AccountListResult, error)
}

// AccountService handles account business logic.
type AccountService struct {
	reader   accountReader
	operator actionProcessor
}

// NewAccountService creates a new AccountService.
func NewAccountService(reader accountReader, operator actionProcessor) *AccountService {
	return &AccountService{
		reader:   reader,
		operator: operator,
	}
}

// CreateAccount creates a new account and returns its ID. The balance starts
// at the starting balance.
func (s *AccountService) CreateAccount(ctx context.Context, create Account) (uuid.UUID, error) {
	action := &actions.CreateAccount{
		Name:            create.Name,
		Type:            accountTypeToStorage(create.Type),
		SubType:         create.SubType,
		Balance:         create.StartingBalance,
		StartingBalance: create.StartingBalance,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.CreatedID, nil
}

// GetAccount retrieves an account by ID.
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	row, err := s.reader.FindByID(ctx, id)
	if err != nil {
		return nil, fromStorage(err)
	}
	result := accountFromStorage(row)
	return &result, nil
}

// ListAccounts returns a page of accounts using cursor pagination.
func (s *AccountService) ListAccounts(ctx context.Context, cursor *AccountCursor) ([]Account, *AccountCursor, error) {
	filter := &account.AccountFilter{Limit: defaultAccountLimit}
	if cursor != nil {
		filter.Limit = cursor.Limit
		filter.Offset = cursor.Position
	}

	page, err := s.reader.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(page.Accounts) == 0 {
		return nil, nil, nil
	}

	var nextCursor *AccountCursor
	if page.NextCursor != nil {
		nextCursor = &AccountCursor{
			Position: page.NextCursor.Position,
			Limit:    page.NextCursor.Limit,
		}
	}

	convertedAccounts := make([]Account, len(page.Accounts))
	for i, row := range page.Accounts {
		convertedAccounts[i] = accountFromStorage(row)
	}

	return convertedAccounts, nextCursor, nil
}
