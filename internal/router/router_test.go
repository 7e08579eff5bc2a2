package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charityevents/events-api/internal/filter"
	"github.com/charityevents/events-api/internal/handler"
	"github.com/charityevents/events-api/internal/model"
	"github.com/charityevents/events-api/internal/repository"
	"github.com/charityevents/events-api/internal/router"
)

type stubActivities struct{}

func (stubActivities) Search(context.Context, filter.Params) (repository.Page[model.Activity], error) {
	return repository.Page[model.Activity]{List: []model.Activity{}, Page: 1, Limit: 10}, nil
}

func (stubActivities) Register(context.Context, int64) (*model.Reward, error) {
	return nil, repository.ErrRewardNotFound
}

type stubArticles struct{}

func (stubArticles) Search(context.Context, filter.Params) (repository.Page[model.Article], error) {
	return repository.Page[model.Article]{List: []model.Article{}, Page: 1, Limit: 10}, nil
}

type stubPinger struct{}

func (stubPinger) PingContext(context.Context) error { return nil }

func newServer(t *testing.T, limit echo.MiddlewareFunc) *echo.Echo {
	t.Helper()
	uploads := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(uploads, "cover.txt"), []byte("cover"), 0o644))

	e := echo.New()
	e.JSONSerializer = handler.JSONSerializer{}
	opts := router.Options{CORSOrigins: []string{"*"}, UploadsDir: uploads, RateLimit: limit}
	router.Use(e, opts)
	router.RegisterRoutes(e, router.Handlers{
		Activity: &handler.ActivityHandler{Activities: stubActivities{}},
		Article:  &handler.ArticleHandler{Articles: stubArticles{}},
		Health:   &handler.HealthHandler{DB: stubPinger{}},
	}, opts)
	return e
}

func TestRoutes(t *testing.T) {
	e := newServer(t, nil)

	cases := []struct {
		method string
		path   string
		status int
	}{
		{method: http.MethodGet, path: "/healthz", status: http.StatusOK},
		{method: http.MethodGet, path: "/api/index", status: http.StatusOK},
		{method: http.MethodGet, path: "/api/activity/getActivity", status: http.StatusOK},
		{method: http.MethodPost, path: "/api/activity/register", status: http.StatusBadRequest},
		{method: http.MethodGet, path: "/api/active/article/search", status: http.StatusOK},
		{method: http.MethodGet, path: "/uploads/cover.txt", status: http.StatusOK},
		{method: http.MethodGet, path: "/api/unknown", status: http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
			assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
		})
	}
}

func TestRoutes_RateLimitOnlyOnAPI(t *testing.T) {
	deny := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error { return c.NoContent(http.StatusTooManyRequests) }
	}
	e := newServer(t, deny)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/index", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutes_CORS(t *testing.T) {
	e := newServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/index", nil)
	req.Header.Set(echo.HeaderOrigin, "https://charity.example")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
