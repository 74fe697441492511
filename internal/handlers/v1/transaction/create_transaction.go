package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-api/internal/service"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	TransactionDate string `json:"txn_date,omitempty" doc:"Transaction date, YYYY-MM-DD or RFC3339; defaults to today"`
	Amount          string `json:"amount" required:"true" doc:"Decimal amount"`
	Description     string `json:"description,omitempty" doc:"Free text description"`
	AccountID       string `json:"account_id" format:"uuid" required:"true" doc:"Account UUID"`
	CategoryID      string `json:"category_id" format:"uuid" required:"true" doc:"Category UUID"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

func parseCreateTransactionInput(input *CreateTransactionInput) (service.TransactionCreate, error) {
	accountID, err := uuid.FromString(input.Body.AccountID)
	if err != nil {
		return service.TransactionCreate{}, huma.NewError(http.StatusBadRequest, "invalid account_id", err)
	}
	categoryID, err := uuid.FromString(input.Body.CategoryID)
	if err != nil {
		return service.TransactionCreate{}, huma.NewError(http.StatusBadRequest, "invalid category_id", err)
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return service.TransactionCreate{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	var transactionDate time.Time
	if input.Body.TransactionDate != "" {
		transactionDate, err = parseDate("txn_date", input.Body.TransactionDate)
		if err != nil {
			return service.TransactionCreate{}, err
		}
	}

	return service.TransactionCreate{
		AccountID:       accountID,
		CategoryID:      categoryID,
		Amount:          amount,
		Description:     input.Body.Description,
		TransactionDate: transactionDate,
	}, nil
}

func (r *TransactionResource) handleCreate(ctx context.Context, input *CreateTransactionInput) (*TransactionOutput, error) {
	create, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	stopTimer := startTiming(ctx, "createTransactionMs")
	id, err := r.service.CreateTransaction(ctx, create)
	stopTimer()
	if err != nil {
		return nil, r.internalError("create", err)
	}
	addLogData(ctx, "transactionID", id.String())

	return r.fetch(ctx, "create", id)
}
