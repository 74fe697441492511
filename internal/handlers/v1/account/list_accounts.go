package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-api/internal/logging"
	"github.com/carson-networks/budget-api/internal/service"
)

const defaultPageSize = 20

type ListAccountsInput struct {
	Position int `query:"position" minimum:"0" doc:"Offset of the first account to return"`
	Limit    int `query:"limit" minimum:"1" maximum:"100" doc:"Page size, default 20"`
}

type ListAccountsCursor struct {
	Position int `json:"position" doc:"Offset for next page"`
	Limit    int `json:"limit" doc:"Page size"`
}

type ListAccountsResponseBody struct {
	Accounts   []Account           `json:"accounts" doc:"Page of accounts"`
	NextCursor *ListAccountsCursor `json:"nextCursor,omitempty" doc:"Absent on the last page"`
}

type ListAccountsOutput struct {
	Body ListAccountsResponseBody
}

// pageCursor returns nil for a first-page request without explicit paging.
func (in *ListAccountsInput) pageCursor() *service.AccountCursor {
	if in.Limit == 0 && in.Position == 0 {
		return nil
	}
	cursor := &service.AccountCursor{Position: in.Position, Limit: in.Limit}
	if cursor.Limit == 0 {
		cursor.Limit = defaultPageSize
	}
	return cursor
}

func (h *Handler) list(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error) {
	var (
		page []service.Account
		next *service.AccountCursor
		err  error
	)
	timed(ctx, "listAccountsMs", func() {
		page, next, err = h.AccountService.ListAccounts(ctx, input.pageCursor())
	})
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list accounts", err)
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("accountCount", len(page))
	}

	out := &ListAccountsOutput{}
	out.Body.Accounts = make([]Account, 0, len(page))
	for i := range page {
		out.Body.Accounts = append(out.Body.Accounts, toAccount(&page[i]))
	}
	if next != nil {
		out.Body.NextCursor = &ListAccountsCursor{Position: next.Position, Limit: next.Limit}
	}
	return out, nil
}
