package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/charityevents/events-api/internal/filter"
	"github.com/charityevents/events-api/internal/model"
)

// ActivityRepo lists activities and records registrations against their
// reward rows.
type ActivityRepo struct {
	db      *sqlx.DB
	tables  Tables
	filters filter.Builder
}

// NewActivityRepo creates a new ActivityRepo.
func NewActivityRepo(db *sqlx.DB, tables Tables, filters filter.Builder) *ActivityRepo {
	return &ActivityRepo{db: db, tables: tables, filters: filters}
}

// rewardJoin attaches at most one reward row (the lowest id) per activity so
// the listing never duplicates an activity.
func rewardJoin(t Tables) Join {
	return Join{
		Table: t.Name(tableReward),
		Alias: "ar",
		On: fmt.Sprintf(
			"ar.id = (SELECT MIN(r.id) FROM %s r WHERE r.activity_id = ac.id)",
			t.Name(tableReward),
		),
	}
}

func rewardColumns() []any {
	return []any{
		goqu.I("ar.id").As("reward_id"),
		goqu.I("ar.registration_fee"),
		goqu.I("ar.participant_count"),
		goqu.I("ar.havemoney").As("reward_havemoney"),
		goqu.I("ar.status").As("reward_status"),
	}
}

func (r *ActivityRepo) source() Source {
	cols := []any{
		goqu.I("ac.id"),
		goqu.I("ac.article_detail_id"),
		goqu.I("ac.background_image"),
		goqu.I("ac.title"),
		goqu.I("ac.subtitle"),
		goqu.I("ac.status"),
		goqu.I("ac.location"),
		goqu.I("ac.createtime"),
		goqu.I("ac.updatetime"),
		goqu.I("ac.expirationtime"),
		goqu.I("ac.deletetime"),
		goqu.I("ac.currency_type"),
		goqu.I("ac.target_amount"),
	}
	return Source{
		Table:   r.tables.Name(tableActivity),
		Alias:   "ac",
		Joins:   []Join{rewardJoin(r.tables)},
		Columns: append(cols, rewardColumns()...),
		OrderBy: goqu.I("ac.id").Desc(),
	}
}

// Search returns one page of activities matching p, newest first, each with
// its lifecycle phase filled in.
func (r *ActivityRepo) Search(ctx context.Context, p filter.Params) (Page[model.Activity], error) {
	q, err := Assemble(r.source(), r.filters.Build(p, filter.ActivityListing), p.Page, p.Limit)
	if err != nil {
		return Page[model.Activity]{}, err
	}
	page, err := fetchPage[model.Activity](ctx, r.db, q)
	if err != nil {
		return Page[model.Activity]{}, err
	}
	model.WithPhase(page.List, r.filters.CurrentTime(), r.filters.Location)
	return page, nil
}

// Register adds one participant to the activity's reward row and adds the
// registration fee to the raised amount, then returns the refreshed row.
// Both statements share a transaction; the UPDATE's row lock serialises
// concurrent registrations for the same activity until commit.
//
// ErrRewardNotFound means no reward row exists and nothing was changed.
func (r *ActivityRepo) Register(ctx context.Context, activityID int64) (*model.Reward, error) {
	if activityID <= 0 {
		return nil, fmt.Errorf("%w: activity_id must be a positive integer", filter.ErrInvalidInput)
	}

	update, updateArgs, reread, rereadArgs, err := r.registerSQL(activityID)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, dataAccess("begin register", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, update, updateArgs...)
	if err != nil {
		return nil, dataAccess("increment reward", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, dataAccess("increment reward", err)
	}
	if n == 0 {
		return nil, ErrRewardNotFound
	}

	var reward model.Reward
	if err := tx.GetContext(ctx, &reward, reread, rereadArgs...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRewardNotFound
		}
		return nil, dataAccess("read reward", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, dataAccess("commit register", err)
	}
	committed = true
	return &reward, nil
}

func (r *ActivityRepo) registerSQL(activityID int64) (update string, updateArgs []any, reread string, rereadArgs []any, err error) {
	table := r.tables.Name(tableReward)
	ds := goqu.Dialect(dialectMySQL)

	update, updateArgs, err = ds.Update(table).Prepared(true).
		Set(goqu.Record{
			"participant_count": goqu.L("COALESCE(participant_count, 0) + 1"),
			"havemoney":         goqu.L("COALESCE(havemoney, 0) + COALESCE(registration_fee, 0)"),
		}).
		Where(goqu.C("activity_id").Eq(activityID)).
		ToSQL()
	if err != nil {
		return "", nil, "", nil, errors.Join(ErrBuildingQueryFailed, err)
	}

	reread, rereadArgs, err = ds.From(table).Prepared(true).
		Select(
			goqu.C("id").As("reward_id"),
			goqu.C("activity_id"),
			goqu.L("COALESCE(registration_fee, 0)").As("registration_fee"),
			goqu.L("COALESCE(participant_count, 0)").As("participant_count"),
			goqu.L("COALESCE(havemoney, 0)").As("reward_havemoney"),
			goqu.C("status").As("reward_status"),
		).
		Where(goqu.C("activity_id").Eq(activityID)).
		Order(goqu.C("id").Asc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return "", nil, "", nil, errors.Join(ErrBuildingQueryFailed, err)
	}
	return update, updateArgs, reread, rereadArgs, nil
}
