package transaction

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-api/internal/service"
)

// UpdateTransactionBody is the request body for updating a transaction.
// Omitted fields keep their stored value. Extra fields from a fetched
// transaction (account, category, created_at) are accepted and ignored.
type UpdateTransactionBody struct {
	_               struct{} `json:"-" additionalProperties:"true"`
	ID              string   `json:"id,omitempty" format:"uuid" doc:"Transaction UUID, must match the path id when present"`
	TransactionDate string   `json:"txn_date,omitempty" doc:"Transaction date, YYYY-MM-DD or RFC3339"`
	Amount          string   `json:"amount,omitempty" doc:"Decimal amount"`
	Description     *string  `json:"description,omitempty" doc:"Free text description"`
	AccountID       string   `json:"account_id,omitempty" format:"uuid" doc:"Account UUID"`
	CategoryID      string   `json:"category_id,omitempty" format:"uuid" doc:"Category UUID"`
}

// UpdateTransactionInput is the Huma input for updating a transaction.
type UpdateTransactionInput struct {
	ID   string `path:"id" format:"uuid" doc:"Transaction UUID"`
	Body UpdateTransactionBody
}

func parseUpdateTransactionInput(input *UpdateTransactionInput) (service.TransactionUpdate, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return service.TransactionUpdate{}, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}
	update := service.TransactionUpdate{ID: id}

	body := input.Body
	if body.ID != "" {
		bodyID, err := uuid.FromString(body.ID)
		if err != nil || bodyID != id {
			return service.TransactionUpdate{}, huma.NewError(http.StatusBadRequest, "body id does not match path id")
		}
	}
	if body.AccountID != "" {
		accountID, err := uuid.FromString(body.AccountID)
		if err != nil {
			return service.TransactionUpdate{}, huma.NewError(http.StatusBadRequest, "invalid account_id", err)
		}
		update.AccountID = omit.From(accountID)
	}
	if body.CategoryID != "" {
		categoryID, err := uuid.FromString(body.CategoryID)
		if err != nil {
			return service.TransactionUpdate{}, huma.NewError(http.StatusBadRequest, "invalid category_id", err)
		}
		update.CategoryID = omit.From(categoryID)
	}
	if body.Amount != "" {
		amount, err := decimal.NewFromString(body.Amount)
		if err != nil {
			return service.TransactionUpdate{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
		}
		update.Amount = omit.From(amount)
	}
	if body.Description != nil {
		update.Description = omit.From(*body.Description)
	}
	if body.TransactionDate != "" {
		transactionDate, err := parseDate("txn_date", body.TransactionDate)
		if err != nil {
			return service.TransactionUpdate{}, err
		}
		update.TransactionDate = omit.From(transactionDate)
	}

	return update, nil
}

func (r *TransactionResource) handleUpdate(ctx context.Context, input *UpdateTransactionInput) (*TransactionOutput, error) {
	update, err := parseUpdateTransactionInput(input)
	if err != nil {
		return nil, err
	}
	addLogData(ctx, "transactionID", update.ID.String())

	stopTimer := startTiming(ctx, "updateTransactionMs")
	err = r.service.UpdateTransaction(ctx, update)
	stopTimer()
	if err != nil {
		return nil, r.internalError("update", err)
	}

	return r.fetch(ctx, "update", update.ID)
}
