package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/charityevents/events-api/internal/filter"
	"github.com/charityevents/events-api/internal/model"
	"github.com/charityevents/events-api/internal/repository"
)

type ArticleStore interface {
	Search(ctx context.Context, p filter.Params) (repository.Page[model.Article], error)
}

type ArticleHandler struct {
	Articles ArticleStore
	MaxLimit int
}

// Search answers /api/active/article/search with data = {list,total,page,limit}.
func (h *ArticleHandler) Search(c echo.Context) error {
	empty := repository.Page[model.Article]{List: []model.Article{}}

	p, err := listParams(c, h.MaxLimit)
	if err != nil {
		return fail(c, err, empty)
	}
	page, err := h.Articles.Search(c.Request().Context(), p)
	if err != nil {
		return fail(c, err, empty)
	}
	return ok(c, page, nil)
}
