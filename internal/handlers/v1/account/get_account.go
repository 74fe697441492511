package account

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/service"
)

type GetAccountInput struct {
	ID string `path:"id" format:"uuid" doc:"Account UUID"`
}

type GetAccountOutput struct {
	Body Account
}

func (h *Handler) get(ctx context.Context, input *GetAccountInput) (*GetAccountOutput, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}

	var acc *service.Account
	timed(ctx, "getAccountMs", func() {
		acc, err = h.AccountService.GetAccount(ctx, id)
	})
	if err != nil {
		if service.KindOf(err) == service.ErrorKindNotFound {
			return nil, huma.Error404NotFound(fmt.Sprintf("Account %s does not exist", id))
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to get account", err)
	}

	return &GetAccountOutput{Body: toAccount(acc)}, nil
}
