package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-api/internal/logging"
	"github.com/carson-networks/budget-api/internal/service"
)

// AccountRef is the account a transaction is booked against.
type AccountRef struct {
	ID   string `json:"id" doc:"Account UUID"`
	Name string `json:"name" doc:"Account name"`
}

// CategoryRef is the category a transaction is filed under.
type CategoryRef struct {
	ID   string `json:"id" doc:"Category UUID"`
	Name string `json:"name" doc:"Category name"`
}

// Transaction is the API response model for a hydrated transaction.
type Transaction struct {
	ID              string      `json:"id" doc:"Transaction UUID"`
	TransactionDate string      `json:"txn_date" doc:"Transaction date (YYYY-MM-DD)"`
	Amount          string      `json:"amount" doc:"Decimal amount"`
	Description     string      `json:"description" doc:"Free text description"`
	AccountID       string      `json:"account_id" doc:"Account UUID"`
	CategoryID      string      `json:"category_id" doc:"Category UUID"`
	Account         AccountRef  `json:"account" doc:"Account the transaction is booked against"`
	Category        CategoryRef `json:"category" doc:"Category the transaction is filed under"`
	CreatedAt       string      `json:"created_at" doc:"RFC3339 creation time"`
}

// CategoryGroup is one entry of the grouped listing.
type CategoryGroup struct {
	Category     CategoryRef   `json:"category" doc:"Category of this group"`
	Total        string        `json:"total" doc:"Sum of the group's amounts"`
	Transactions []Transaction `json:"transactions" doc:"Transactions in the group, newest first"`
}

// TransactionOutput is the Huma output carrying one hydrated transaction.
type TransactionOutput struct {
	Body Transaction
}

// Error is the body sent for failed transaction requests.
type Error struct {
	status  int
	Message string `json:"message" doc:"What went wrong"`
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) GetStatus() int {
	return e.status
}

type transactionService interface {
	CreateTransaction(ctx context.Context, create service.TransactionCreate) (uuid.UUID, error)
	UpdateTransaction(ctx context.Context, update service.TransactionUpdate) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*service.Transaction, error)
	GetTransactions(ctx context.Context, accountID *uuid.UUID) ([]service.Transaction, error)
	GetTransactionsByCategory(ctx context.Context, start, end time.Time) ([]service.CategoryTransactions, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
}

// TransactionResource serves the /transactions routes on top of the
// transaction service.
type TransactionResource struct {
	service transactionService
	log     logrus.FieldLogger
}

func NewTransactionResource(svc transactionService, log logrus.FieldLogger) *TransactionResource {
	return &TransactionResource{
		service: svc,
		log:     log,
	}
}

// Register registers every transaction endpoint with the Huma API.
func (r *TransactionResource) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/transactions",
		Summary:     "Create transaction",
		Description: "Books a new transaction and returns it with its account and category.",
		Tags:        []string{"Transactions"},
	}, r.handleCreate)

	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/transactions/{id}",
		Summary:     "Update transaction",
		Description: "Changes the given fields of a transaction and returns it with its account and category.",
		Tags:        []string{"Transactions"},
	}, r.handleUpdate)

	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/transactions/{id}",
		Summary:     "Get transaction",
		Tags:        []string{"Transactions"},
	}, r.handleGet)

	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/transactions",
		Summary:     "List transactions",
		Description: "Lists transactions, optionally for one account, or grouped by category over a date range. " +
			"The body is an array of transactions, or an array of category groups when groupByCategory is set.",
		Tags:      []string{"Transactions"},
		Responses: listResponses(api.OpenAPI().Components.Schemas),
	}, r.handleList)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-transaction",
		Method:        http.MethodDelete,
		Path:          "/transactions/{id}",
		Summary:       "Delete transaction",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
	}, r.handleDelete)
}

// internalError logs err and converts it into a 500 carrying its message.
func (r *TransactionResource) internalError(operation string, err error) error {
	r.log.WithError(err).Errorf("TransactionResource.%s", operation)
	return &Error{status: http.StatusInternalServerError, Message: err.Error()}
}

func startTiming(ctx context.Context, name string) func() {
	if logData := logging.GetLogData(ctx); logData != nil {
		return logData.AddTiming(name)
	}
	return func() {}
}

func addLogData(ctx context.Context, key string, value interface{}) {
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData(key, value)
	}
}

// parseDate accepts a calendar date (2014-03-14) or an RFC3339 timestamp and
// returns midnight UTC of that calendar day.
func parseDate(field, value string) (time.Time, error) {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, value)
	}
	if err != nil {
		return time.Time{}, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	year, month, day := parsed.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

func toTransaction(tx *service.Transaction) Transaction {
	return Transaction{
		ID:              tx.ID.String(),
		TransactionDate: tx.TransactionDate.Format(time.DateOnly),
		Amount:          tx.Amount.String(),
		Description:     tx.Description,
		AccountID:       tx.Account.ID.String(),
		CategoryID:      tx.Category.ID.String(),
		Account: AccountRef{
			ID:   tx.Account.ID.String(),
			Name: tx.Account.Name,
		},
		Category: CategoryRef{
			ID:   tx.Category.ID.String(),
			Name: tx.Category.Name,
		},
		CreatedAt: tx.CreatedAt.Format(time.RFC3339),
	}
}

// fetch re-reads the hydrated transaction after a mutation.
func (r *TransactionResource) fetch(ctx context.Context, operation string, id uuid.UUID) (*TransactionOutput, error) {
	stopTimer := startTiming(ctx, "getTransactionMs")
	tx, err := r.service.GetTransaction(ctx, id)
	stopTimer()
	if err != nil {
		return nil, r.internalError(operation, err)
	}
	return &TransactionOutput{Body: toTransaction(tx)}, nil
}
