package account

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/logging"
	"github.com/carson-networks/budget-api/internal/service"
)

// Account is the API response model for an account.
type Account struct {
	ID              string `json:"id" doc:"Account UUID"`
	Name            string `json:"name" doc:"Account name"`
	Type            int    `json:"type" doc:"Account type: 0=Cash, 1=Credit Cards, 2=Investments, 3=Loans, 4=Assets"`
	SubType         string `json:"subType" doc:"Account sub-type"`
	Balance         string `json:"balance" doc:"Decimal balance"`
	StartingBalance string `json:"startingBalance" doc:"Decimal balance when the account was opened"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time"`
}

type accountService interface {
	CreateAccount(ctx context.Context, account service.Account) (uuid.UUID, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*service.Account, error)
	ListAccounts(ctx context.Context, cursor *service.AccountCursor) ([]service.Account, *service.AccountCursor, error)
}

// Handler serves the /v1/account routes.
type Handler struct {
	AccountService accountService
}

func NewHandler(svc accountService) *Handler {
	return &Handler{AccountService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-account",
		Method:        http.MethodPost,
		Path:          "/v1/account",
		Summary:       "Create an account",
		Description:   "Opens an account whose balance starts at the given starting balance.",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusCreated,
	}, h.create)

	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/account/{id}",
		Summary:     "Get an account",
		Tags:        []string{"Accounts"},
	}, h.get)

	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodGet,
		Path:        "/v1/accounts",
		Summary:     "List accounts",
		Description: "Returns one page of accounts ordered by name, with a cursor to the next page.",
		Tags:        []string{"Accounts"},
	}, h.list)
}

// timed runs fn and records its duration under key when the request carries log data.
func timed(ctx context.Context, key string, fn func()) {
	if logData := logging.GetLogData(ctx); logData != nil {
		defer logData.AddTiming(key)()
	}
	fn()
}

func toAccount(acc *service.Account) Account {
	return Account{
		ID:              acc.ID.String(),
		Name:            acc.Name,
		Type:            int(acc.Type),
		SubType:         acc.SubType,
		Balance:         acc.Balance.String(),
		StartingBalance: acc.StartingBalance.String(),
		CreatedAt:       acc.CreatedAt.Format(time.RFC3339),
	}
}
