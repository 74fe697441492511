package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-api/internal/logging"
	"github.com/carson-networks/budget-api/internal/service"
)

type CreateAccountBody struct {
	Name            string `json:"name" minLength:"1" doc:"Account name"`
	Type            int    `json:"type" minimum:"0" maximum:"4" doc:"Account type: 0=Cash, 1=Credit Cards, 2=Investments, 3=Loans, 4=Assets"`
	SubType         string `json:"subType,omitempty" doc:"Account sub-type"`
	StartingBalance string `json:"startingBalance,omitempty" doc:"Opening balance such as '0' or '1234.56', defaults to 0"`
}

type CreateAccountInput struct {
	Body CreateAccountBody
}

type CreateAccountResponse struct {
	ID string `json:"id" doc:"Created account UUID"`
}

type CreateAccountOutput struct {
	Status int
	Body   CreateAccountResponse
}

func (h *Handler) create(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	opening := decimal.Zero
	if raw := input.Body.StartingBalance; raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid startingBalance", err)
		}
		opening = parsed
	}

	var (
		id  uuid.UUID
		err error
	)
	timed(ctx, "createAccountMs", func() {
		id, err = h.AccountService.CreateAccount(ctx, service.Account{
			Name:            input.Body.Name,
			Type:            service.AccountType(input.Body.Type),
			SubType:         input.Body.SubType,
			StartingBalance: opening,
		})
	})
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to create account", err)
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("accountID", id.String())
	}
	return &CreateAccountOutput{
		Status: http.StatusCreated,
		Body:   CreateAccountResponse{ID: id.String()},
	}, nil
}
