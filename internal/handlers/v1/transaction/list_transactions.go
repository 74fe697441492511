package transaction

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
)

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	Account         string `query:"account" format:"uuid" doc:"Only list transactions of this account"`
	GroupByCategory string `query:"groupByCategory" doc:"When present, group transactions by category over startDate..endDate"`
	StartDate       string `query:"startDate" doc:"First day of the grouped range, YYYY-MM-DD or RFC3339"`
	EndDate         string `query:"endDate" doc:"Last day of the grouped range, YYYY-MM-DD or RFC3339"`

	grouped bool
}

// Resolve detects the bare ?groupByCategory flag, which carries no value.
func (i *ListTransactionsInput) Resolve(ctx huma.Context) []error {
	u := ctx.URL()
	query := u.Query()
	if !query.Has("groupByCategory") {
		return nil
	}
	switch strings.ToLower(query.Get("groupByCategory")) {
	case "false", "0":
	default:
		i.grouped = true
	}
	return nil
}

// ListTransactionsOutput is either a flat []Transaction or a []CategoryGroup.
type ListTransactionsOutput struct {
	Body any
}

// listResponses documents both body shapes, which Body any cannot express.
func listResponses(registry huma.Registry) map[string]*huma.Response {
	flat := registry.Schema(reflect.TypeOf([]Transaction{}), true, "TransactionList")
	grouped := registry.Schema(reflect.TypeOf([]CategoryGroup{}), true, "CategoryGroupList")

	return map[string]*huma.Response{
		"200": {
			Description: "Transactions, flat or grouped by category",
			Content: map[string]*huma.MediaType{
				"application/json": {
					Schema: &huma.Schema{OneOf: []*huma.Schema{flat, grouped}},
				},
			},
		},
	}
}

func (r *TransactionResource) handleList(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input.grouped {
		return r.handleListByCategory(ctx, input)
	}

	var accountID *uuid.UUID
	if input.Account != "" {
		id, err := uuid.FromString(input.Account)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid account", err)
		}
		accountID = &id
		addLogData(ctx, "accountID", id.String())
	}

	stopTimer := startTiming(ctx, "listTransactionsMs")
	transactions, err := r.service.GetTransactions(ctx, accountID)
	stopTimer()
	if err != nil {
		return nil, r.internalError("list", err)
	}
	addLogData(ctx, "transactionCount", len(transactions))

	body := make([]Transaction, len(transactions))
	for i := range transactions {
		body[i] = toTransaction(&transactions[i])
	}
	return &ListTransactionsOutput{Body: body}, nil
}

func (r *TransactionResource) handleListByCategory(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	var start, end time.Time
	var err error
	if input.StartDate != "" {
		if start, err = parseDate("startDate", input.StartDate); err != nil {
			return nil, err
		}
	}
	if input.EndDate != "" {
		if end, err = parseDate("endDate", input.EndDate); err != nil {
			return nil, err
		}
	}

	stopTimer := startTiming(ctx, "listTransactionsByCategoryMs")
	groups, err := r.service.GetTransactionsByCategory(ctx, start, end)
	stopTimer()
	if err != nil {
		return nil, r.internalError("list", err)
	}
	addLogData(ctx, "categoryCount", len(groups))

	body := make([]CategoryGroup, len(groups))
	for i, group := range groups {
		transactions := make([]Transaction, len(group.Transactions))
		for j := range group.Transactions {
			transactions[j] = toTransaction(&group.Transactions[j])
		}
		body[i] = CategoryGroup{
			Category: CategoryRef{
				ID:   group.Category.ID.String(),
				Name: group.Category.Name,
			},
			Total:        group.Total.String(),
			Transactions: transactions,
		}
	}
	return &ListTransactionsOutput{Body: body}, nil
}
