package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-api/internal/operator/actions"
	"github.com/carson-networks/budget-api/internal/storage/transaction"
)

type transactionMocks struct {
	reader    *mockTransactionReader
	processor *mockProcessor
	cache     *mockCache
}

func newTestService(t *testing.T) (*TransactionService, *transactionMocks) {
	t.Helper()
	m := &transactionMocks{
		reader:    &mockTransactionReader{},
		processor: &mockProcessor{},
		cache:     &mockCache{},
	}
	t.Cleanup(func() {
		m.reader.AssertExpectations(t)
		m.processor.AssertExpectations(t)
		m.cache.AssertExpectations(t)
	})
	return NewTransactionService(m.reader, m.processor, m.cache), m
}

func makeDetail(categoryName string, categoryID uuid.UUID, amount string, date time.Time) *transaction.TransactionDetail {
	return &transaction.TransactionDetail{
		ID:              uuid.Must(uuid.NewV4()),
		AccountID:       uuid.Must(uuid.NewV4()),
		AccountName:     "Checking",
		CategoryID:      categoryID,
		CategoryName:    categoryName,
		Amount:          decimal.RequireFromString(amount),
		Description:     "Item",
		TransactionDate: date,
		CreatedAt:       date,
	}
}

// -- CreateTransaction tests --

func TestCreateTransaction_Success(t *testing.T) {
	svc, m := newTestService(t)

	accountID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())
	amount := decimal.RequireFromString("42.50")
	txDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	expectedID := uuid.Must(uuid.NewV4())

	m.processor.On("Process", mock.Anything, mock.MatchedBy(func(a *actions.CreateTransaction) bool {
		return a.AccountID == accountID &&
			a.CategoryID == categoryID &&
			a.Amount.Equal(amount) &&
			a.Description == "Groceries" &&
			a.TransactionDate.Equal(txDate)
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*actions.CreateTransaction).CreatedID = expectedID
	}).Return(nil)

	id, err := svc.CreateTransaction(context.Background(), TransactionCreate{
		AccountID:       accountID,
		CategoryID:      categoryID,
		Amount:          amount,
		Description:     "Groceries",
		TransactionDate: txDate,
	})

	assert.NoError(t, err)
	assert.Equal(t, expectedID, id)
}

func TestCreateTransaction_ProcessError(t *testing.T) {
	svc, m := newTestService(t)

	m.processor.On("Process", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	id, err := svc.CreateTransaction(context.Background(), TransactionCreate{})

	assert.Error(t, err)
	assert.Equal(t, "connection refused", err.Error())
	assert.Equal(t, ErrorKindGeneric, KindOf(err))
	assert.Equal(t, uuid.Nil, id)
}

// -- UpdateTransaction tests --

func TestUpdateTransaction_InvalidatesCache(t *testing.T) {
	svc, m := newTestService(t)
	id := uuid.Must(uuid.NewV4())

	m.processor.On("Process", mock.Anything, mock.MatchedBy(func(a *actions.UpdateTransaction) bool {
		amount, ok := a.Update.Amount.Get()
		return a.ID == id && ok && amount.Equal(decimal.RequireFromString("3")) && a.Update.AccountID.IsUnset()
	})).Return(nil)
	m.cache.On("Invalidate", mock.Anything, id.String()).Return()

	err := svc.UpdateTransaction(context.Background(), TransactionUpdate{
		ID:     id,
		Amount: omit.From(decimal.RequireFromString("3")),
	})
	assert.NoError(t, err)
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	svc, m := newTestService(t)
	id := uuid.Must(uuid.NewV4())

	m.processor.On("Process", mock.Anything, mock.Anything).Return(transaction.ErrNotFound)
	m.cache.On("Invalidate", mock.Anything, id.String()).Return()

	err := svc.UpdateTransaction(context.Background(), TransactionUpdate{ID: id})
	assert.Equal(t, ErrorKindNotFound, KindOf(err))
}

// -- GetTransaction tests --

func TestGetTransaction_ReadThrough(t *testing.T) {
	svc, m := newTestService(t)

	row := makeDetail("Food", uuid.Must(uuid.NewV4()), "9.99", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	m.cache.On("Get", mock.Anything, row.ID.String()).Return(nil, int64(4), false)
	m.reader.On("FindByID", mock.Anything, row.ID).Return(row, nil)
	m.cache.On("SetIfVersion", mock.Anything, row.ID.String(), mock.AnythingOfType("*service.Transaction"), int64(4)).Return()

	result, err := svc.GetTransaction(context.Background(), row.ID)

	require.NoError(t, err)
	assert.Equal(t, row.ID, result.ID)
	assert.Equal(t, AccountRef{ID: row.AccountID, Name: "Checking"}, result.Account)
	assert.Equal(t, CategoryRef{ID: row.CategoryID, Name: "Food"}, result.Category)
	assert.True(t, row.Amount.Equal(result.Amount))
	assert.Equal(t, row.Description, result.Description)
	assert.Equal(t, row.TransactionDate, result.TransactionDate)
}

// versionedCache keeps entries in memory with the same version rules as the
// Redis view cache.
type versionedCache struct {
	mu       sync.Mutex
	values   map[string]*Transaction
	versions map[string]int64
}

func newVersionedCache() *versionedCache {
	return &versionedCache{values: map[string]*Transaction{}, versions: map[string]int64{}}
}

func (c *versionedCache) Get(_ context.Context, id string) (*Transaction, int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.values[id]
	return value, c.versions[id], ok
}

func (c *versionedCache) SetIfVersion(_ context.Context, id string, value *Transaction, version int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[id] == version {
		c.values[id] = value
	}
}

func (c *versionedCache) Invalidate(_ context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[id]++
	delete(c.values, id)
}

func TestGetTransaction_UpdateDuringReadIsNotCached(t *testing.T) {
	reader := &mockTransactionReader{}
	processor := &mockProcessor{}
	svc := NewTransactionService(reader, processor, newVersionedCache())
	ctx := context.Background()

	before := makeDetail("Food", uuid.Must(uuid.NewV4()), "1", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	after := *before
	after.Amount = decimal.RequireFromString("99")

	processor.On("Process", mock.Anything, mock.AnythingOfType("*actions.UpdateTransaction")).Return(nil)
	// The update commits while the first read is still in flight.
	reader.On("FindByID", mock.Anything, before.ID).Return(before, nil).Once().Run(func(mock.Arguments) {
		require.NoError(t, svc.UpdateTransaction(ctx, TransactionUpdate{
			ID:     before.ID,
			Amount: omit.From(decimal.RequireFromString("99")),
		}))
	})
	reader.On("FindByID", mock.Anything, before.ID).Return(&after, nil).Once()

	first, err := svc.GetTransaction(ctx, before.ID)
	require.NoError(t, err)
	assert.True(t, first.Amount.Equal(decimal.RequireFromString("1")))

	second, err := svc.GetTransaction(ctx, before.ID)
	require.NoError(t, err)
	assert.True(t, second.Amount.Equal(decimal.RequireFromString("99")), "got amount %s", second.Amount)

	third, err := svc.GetTransaction(ctx, before.ID)
	require.NoError(t, err)
	assert.True(t, third.Amount.Equal(decimal.RequireFromString("99")))

	reader.AssertExpectations(t)
	processor.AssertExpectations(t)
}

func TestGetTransaction_CacheHit(t *testing.T) {
	svc, m := newTestService(t)

	cached := &Transaction{ID: uuid.Must(uuid.NewV4()), Description: "cached"}
	m.cache.On("Get", mock.Anything, cached.ID.String()).Return(cached, int64(2), true)

	result, err := svc.GetTransaction(context.Background(), cached.ID)

	require.NoError(t, err)
	assert.Same(t, cached, result)
}

func TestGetTransaction_NotFound(t *testing.T) {
	svc, m := newTestService(t)
	id := uuid.Must(uuid.NewV4())

	m.cache.On("Get", mock.Anything, id.String()).Return(nil, int64(0), false)
	m.reader.On("FindByID", mock.Anything, id).Return(nil, transaction.ErrNotFound)

	result, err := svc.GetTransaction(context.Background(), id)

	assert.Nil(t, result)
	assert.Equal(t, ErrorKindNotFound, KindOf(err))
}

func TestGetTransaction_StorageError(t *testing.T) {
	svc, m := newTestService(t)
	id := uuid.Must(uuid.NewV4())

	m.cache.On("Get", mock.Anything, id.String()).Return(nil, int64(0), false)
	m.reader.On("FindByID", mock.Anything, id).Return(nil, errors.New("database unavailable"))

	_, err := svc.GetTransaction(context.Background(), id)

	assert.Equal(t, ErrorKindGeneric, KindOf(err))
	assert.Equal(t, "database unavailable", err.Error())
}

func TestGetTransaction_WithoutCache(t *testing.T) {
	reader := &mockTransactionReader{}
	svc := NewTransactionService(reader, &mockProcessor{}, nil)

	row := makeDetail("Food", uuid.Must(uuid.NewV4()), "1", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	reader.On("FindByID", mock.Anything, row.ID).Return(row, nil)

	result, err := svc.GetTransaction(context.Background(), row.ID)
	require.NoError(t, err)
	assert.Equal(t, row.ID, result.ID)
	reader.AssertExpectations(t)
}

// -- GetTransactions tests --

func TestGetTransactions_ByAccount(t *testing.T) {
	svc, m := newTestService(t)

	accountID := uuid.Must(uuid.NewV4())
	rows := []*transaction.TransactionDetail{
		makeDetail("Food", uuid.Must(uuid.NewV4()), "1", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)),
		makeDetail("Rent", uuid.Must(uuid.NewV4()), "2", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
	}
	m.reader.On("List", mock.Anything, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.AccountID != nil && *f.AccountID == accountID && f.StartDate == nil && f.EndDate == nil
	})).Return(rows, nil)

	result, err := svc.GetTransactions(context.Background(), &accountID)

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, rows[0].ID, result[0].ID)
	assert.Equal(t, rows[1].ID, result[1].ID)
}

func TestGetTransactions_All(t *testing.T) {
	svc, m := newTestService(t)

	m.reader.On("List", mock.Anything, &transaction.TransactionFilter{}).
		Return([]*transaction.TransactionDetail{}, nil)

	result, err := svc.GetTransactions(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, result)
	assert.NotNil(t, result)
}

// -- GetTransactionsByCategory tests --

func TestGetTransactionsByCategory_GroupsAndTotals(t *testing.T) {
	svc, m := newTestService(t)

	start := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2014, 12, 31, 0, 0, 0, 0, time.UTC)
	food := uuid.Must(uuid.NewV4())
	rent := uuid.Must(uuid.NewV4())
	rows := []*transaction.TransactionDetail{
		makeDetail("Rent", rent, "-900", time.Date(2014, 5, 1, 0, 0, 0, 0, time.UTC)),
		makeDetail("Food", food, "-12.50", time.Date(2014, 4, 1, 0, 0, 0, 0, time.UTC)),
		makeDetail("Food", food, "-7.25", time.Date(2014, 3, 1, 0, 0, 0, 0, time.UTC)),
	}
	m.reader.On("List", mock.Anything, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.AccountID == nil && f.StartDate.Equal(start) && f.EndDate.Equal(end)
	})).Return(rows, nil)

	groups, err := svc.GetTransactionsByCategory(context.Background(), start, end)

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, CategoryRef{ID: food, Name: "Food"}, groups[0].Category)
	assert.True(t, groups[0].Total.Equal(decimal.RequireFromString("-19.75")))
	require.Len(t, groups[0].Transactions, 2)
	assert.Equal(t, rows[1].ID, groups[0].Transactions[0].ID, "list order kept within a group")
	assert.Equal(t, CategoryRef{ID: rent, Name: "Rent"}, groups[1].Category)
	assert.True(t, groups[1].Total.Equal(decimal.RequireFromString("-900")))
}

func TestGetTransactionsByCategory_OpenRange(t *testing.T) {
	svc, m := newTestService(t)

	m.reader.On("List", mock.Anything, &transaction.TransactionFilter{}).Return(nil, nil)

	groups, err := svc.GetTransactionsByCategory(context.Background(), time.Time{}, time.Time{})

	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestGetTransactionsByCategory_StorageError(t *testing.T) {
	svc, m := newTestService(t)

	m.reader.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("database unavailable"))

	groups, err := svc.GetTransactionsByCategory(context.Background(), time.Time{}, time.Time{})

	assert.Error(t, err)
	assert.Nil(t, groups)
}

// -- DeleteTransaction tests --

func TestDeleteTransaction(t *testing.T) {
	svc, m := newTestService(t)
	id := uuid.Must(uuid.NewV4())

	m.processor.On("Process", mock.Anything, &actions.DeleteTransaction{ID: id}).Return(nil)
	m.cache.On("Invalidate", mock.Anything, id.String()).Return()

	assert.NoError(t, svc.DeleteTransaction(context.Background(), id))
}
