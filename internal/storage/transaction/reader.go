package transaction

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const tableName = "transactions"

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// detailQuery selects transactions joined with their account and category names.
func detailQuery(queryMods ...bob.Mod[*dialect.SelectQuery]) bob.BaseQuery[*dialect.SelectQuery] {
	mods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(
			"t.id",
			"t.account_id",
			"a.name AS account_name",
			"t.category_id",
			"c.name AS category_name",
			"t.amount",
			"t.description",
			"t.txn_date",
			"t.created_at",
		),
		sm.From("transactions AS t"),
		sm.InnerJoin("accounts AS a").On(psql.Quote("a", "id").EQ(psql.Quote("t", "account_id"))),
		sm.InnerJoin("categories AS c").On(psql.Quote("c", "id").EQ(psql.Quote("t", "category_id"))),
	}
	return psql.Select(append(mods, queryMods...)...)
}

// FindByID returns the transaction with its account and category, or ErrNotFound.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*TransactionDetail, error) {
	query := detailQuery(sm.Where(psql.Quote("t", "id").EQ(psql.Arg(id))))

	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[TransactionDetail]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns transactions matching the filter, newest transaction date first.
// A nil filter returns every transaction.
func (r *Reader) List(ctx context.Context, filter *TransactionFilter) ([]*TransactionDetail, error) {
	var queryMods []bob.Mod[*dialect.SelectQuery]
	if filter != nil {
		if filter.AccountID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("t", "account_id").EQ(psql.Arg(*filter.AccountID))))
		}
		if filter.StartDate != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("t", "txn_date").GTE(psql.Arg(filter.StartDate.Format(time.DateOnly)))))
		}
		if filter.EndDate != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("t", "txn_date").LTE(psql.Arg(filter.EndDate.Format(time.DateOnly)))))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("t", "txn_date")).Desc(),
		sm.OrderBy(psql.Quote("t", "created_at")).Desc(),
		sm.OrderBy(psql.Quote("t", "id")).Desc(),
	)

	rows, err := bob.All(ctx, r.exec, detailQuery(queryMods...), scan.StructMapper[TransactionDetail]())
	if err != nil {
		return nil, err
	}

	result := make([]*TransactionDetail, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
