package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
)

// DeleteTransactionInput is the Huma input for deleting a transaction.
type DeleteTransactionInput struct {
	ID string `path:"id" format:"uuid" doc:"Transaction UUID"`
}

// handleDelete answers 204 whether or not the id existed.
func (r *TransactionResource) handleDelete(ctx context.Context, input *DeleteTransactionInput) (*struct{}, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}
	addLogData(ctx, "transactionID", id.String())

	stopTimer := startTiming(ctx, "deleteTransactionMs")
	err = r.service.DeleteTransaction(ctx, id)
	stopTimer()
	if err != nil {
		return nil, r.internalError("delete", err)
	}
	return nil, nil
}
