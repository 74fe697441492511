package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/budget-api/internal/operator/actions"
	"github.com/carson-networks/budget-api/internal/storage/account"
	"github.com/carson-networks/budget-api/internal/storage/category"
	"github.com/carson-networks/budget-api/internal/storage/transaction"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

type mockTransactionReader struct {
	mock.Mock
}

func (m *mockTransactionReader) FindByID(ctx context.Context, id uuid.UUID) (*transaction.TransactionDetail, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*transaction.TransactionDetail)
	return row, args.Error(1)
}

func (m *mockTransactionReader) List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.TransactionDetail, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*transaction.TransactionDetail)
	return rows, args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, id string) (*Transaction, int64, bool) {
	args := m.Called(ctx, id)
	value, _ := args.Get(0).(*Transaction)
	return value, args.Get(1).(int64), args.Bool(2)
}

func (m *mockCache) SetIfVersion(ctx context.Context, id string, value *Transaction, version int64) {
	m.Called(ctx, id, value, version)
}

func (m *mockCache) Invalidate(ctx context.Context, id string) {
	m.Called(ctx, id)
}

type mockAccountReader struct {
	mock.Mock
}

func (m *mockAccountReader) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*account.Account)
	return row, args.Error(1)
}

func (m *mockAccountReader) List(ctx context.Context, filter *account.AccountFilter) (*account.AccountListResult, error) {
	args := m.Called(ctx, filter)
	page, _ := args.Get(0).(*account.AccountListResult)
	return page, args.Error(1)
}

type mockCategoryReader struct {
	mock.Mock
}

func (m *mockCategoryReader) List(ctx context.Context) ([]*category.Category, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]*category.Category)
	return rows, args.Error(1)
}
