package repository

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/charityevents/events-api/internal/filter"
	"github.com/charityevents/events-api/internal/model"
)

// ArticleRepo searches article content joined to its activity and reward.
type ArticleRepo struct {
	db      *sqlx.DB
	tables  Tables
	filters filter.Builder
}

func NewArticleRepo(db *sqlx.DB, tables Tables, filters filter.Builder) *ArticleRepo {
	return &ArticleRepo{db: db, tables: tables, filters: filters}
}

func (r *ArticleRepo) source() Source {
	activity := r.tables.Name(tableActivity)
	return Source{
		Table: r.tables.Name(tableArticle),
		Alias: "aa",
		Joins: []Join{
			{
				Table: activity,
				Alias: "ac",
				// newest activity pointing at the article
				On: fmt.Sprintf(
					"ac.id = (SELECT MAX(a.id) FROM %s a WHERE a.article_detail_id = aa.Id)",
					activity,
				),
			},
			rewardJoin(r.tables),
		},
		Columns: append([]any{
			goqu.I("aa.Id").As("article_id"),
			goqu.I("aa.Id").As("article_detail_id"),
			goqu.I("aa.Tag"),
			goqu.I("aa.Tickets"),
			goqu.I("aa.Registration"),
			goqu.I("aa.Articlecontent"),
			goqu.I("aa.updatetime"),
			goqu.I("ac.id").As("activity_id"),
			goqu.I("ac.background_image"),
			goqu.I("ac.title"),
			goqu.I("ac.subtitle"),
			goqu.I("ac.status"),
			goqu.I("ac.createtime"),
			goqu.I("ac.expirationtime"),
			goqu.I("ac.deletetime"),
			goqu.I("ac.currency_type"),
			goqu.I("ac.location"),
			goqu.I("ac.target_amount"),
		}, rewardColumns()...),
		OrderBy: goqu.I("aa.Id").Desc(),
	}
}

// Search returns one page of articles matching p, newest first.
func (r *ArticleRepo) Search(ctx context.Context, p filter.Params) (Page[model.Article], error) {
	q, err := Assemble(r.source(), r.filters.Build(p, filter.ArticleSearch), p.Page, p.Limit)
	if err != nil {
		return Page[model.Article]{}, err
	}
	return fetchPage[model.Article](ctx, r.db, q)
}
