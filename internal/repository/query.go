package repository

import (
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/charityevents/events-api/internal/filter"
)

const (
	dialectMySQL = "mysql"
	aliasCount   = "cnt"

	// paginationSQL is appended to the list query only; the count query and the
	// list query share everything before it.
	paginationSQL = " LIMIT ? OFFSET ?"
)

// ErrBuildingQueryFailed is returned when goqu cannot render a statement.
var ErrBuildingQueryFailed = errors.New("building query failed")

// Join is a LEFT JOIN from the primary table. On is a literal SQL condition
// over table aliases.
type Join struct {
	Table string
	Alias string
	On    string
}

// Source describes the tables and projection of one listing.
type Source struct {
	Table   string
	Alias   string
	Joins   []Join
	Columns []any
	// OrderBy defaults to <Alias>.id DESC.
	OrderBy exp.OrderedExpression
}

// PagedQuery is a count query and a list query with identical WHERE clauses.
// ListArgs is Args followed by limit and offset.
type PagedQuery struct {
	CountSQL string
	ListSQL  string
	Args     []any
	ListArgs []any
	Page     int
	Limit    int
}

// Assemble renders src filtered by clauses as a paired COUNT and page SELECT.
// page and limit below 1 fall back to 1 and 10. Limit has no upper bound here;
// a page whose offset overflows is filter.ErrInvalidInput.
func Assemble(src Source, clauses filter.Clauses, page, limit int) (PagedQuery, error) {
	if page < 1 {
		page = filter.DefaultPage
	}
	if limit < 1 {
		limit = filter.DefaultLimit
	}
	offset, err := filter.PageOffset(page, limit)
	if err != nil {
		return PagedQuery{}, err
	}

	base := goqu.Dialect(dialectMySQL).
		From(goqu.T(src.Table).As(src.Alias)).
		Prepared(true)
	for _, j := range src.Joins {
		base = base.LeftJoin(goqu.T(j.Table).As(j.Alias), goqu.On(goqu.L(j.On)))
	}
	for _, c := range clauses {
		base = base.Where(goqu.L(c.SQL(), c.Args()...))
	}

	countSQL, countArgs, err := base.
		Select(goqu.COUNT(goqu.Star()).As(aliasCount)).
		ToSQL()
	if err != nil {
		return PagedQuery{}, errors.Join(ErrBuildingQueryFailed, err)
	}

	order := src.OrderBy
	if order == nil {
		order = goqu.I(src.Alias + ".id").Desc()
	}
	listSQL, listArgs, err := base.
		Select(src.Columns...).
		Order(order).
		ToSQL()
	if err != nil {
		return PagedQuery{}, errors.Join(ErrBuildingQueryFailed, err)
	}

	return PagedQuery{
		CountSQL: countSQL,
		ListSQL:  listSQL + paginationSQL,
		Args:     countArgs,
		ListArgs: append(listArgs, limit, offset),
		Page:     page,
		Limit:    limit,
	}, nil
}
