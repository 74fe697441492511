package transaction

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/service"
)

// GetTransactionInput is the Huma input for fetching one transaction.
type GetTransactionInput struct {
	ID string `path:"id" format:"uuid" doc:"Transaction UUID"`
}

func (r *TransactionResource) handleGet(ctx context.Context, input *GetTransactionInput) (*TransactionOutput, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}
	addLogData(ctx, "transactionID", id.String())

	stopTimer := startTiming(ctx, "getTransactionMs")
	tx, err := r.service.GetTransaction(ctx, id)
	stopTimer()
	if err != nil {
		if service.KindOf(err) == service.ErrorKindNotFound {
			return nil, &Error{
				status:  http.StatusNotFound,
				Message: fmt.Sprintf("Transaction %s does not exist", id),
			}
		}
		return nil, r.internalError("get", err)
	}

	return &TransactionOutput{Body: toTransaction(tx)}, nil
}
