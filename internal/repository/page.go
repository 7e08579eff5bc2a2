package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Page is the uniform listing envelope. Total counts every matching row,
// independent of Page and Limit.
type Page[T any] struct {
	List  []T   `json:"list"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// fetchPage runs the count query, then the list query. Either failure aborts
// the whole page; no partial result is returned.
func fetchPage[T any](ctx context.Context, db sqlx.QueryerContext, q PagedQuery) (Page[T], error) {
	var total int64
	if err := sqlx.GetContext(ctx, db, &total, q.CountSQL, q.Args...); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Page[T]{}, dataAccess("count", err)
	}

	list := make([]T, 0)
	if err := sqlx.SelectContext(ctx, db, &list, q.ListSQL, q.ListArgs...); err != nil {
		return Page[T]{}, dataAccess("list", err)
	}

	return Page[T]{List: list, Total: total, Page: q.Page, Limit: q.Limit}, nil
}
