package filter_test

import (
	"math"
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charityevents/events-api/internal/filter"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func testBuilder() filter.Builder {
	return filter.Builder{Location: time.UTC, Now: func() time.Time { return fixedNow }}
}

func mustParse(t *testing.T, raw string) filter.Params {
	t.Helper()
	q, err := url.ParseQuery(raw)
	require.NoError(t, err)
	p, err := filter.ParseParams(q)
	require.NoError(t, err)
	return p
}

func Test_FormatUnix_Pattern(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)
	shanghai := time.FixedZone("CST", 8*3600)

	for _, epoch := range []int64{0, -1, -86400 * 365, 1, 1700000000, 4102444800} {
		assert.Regexp(t, pattern, filter.FormatUnix(epoch, time.UTC), "epoch %d", epoch)
		assert.Regexp(t, pattern, filter.FormatUnix(epoch, shanghai), "epoch %d", epoch)
	}

	assert.Equal(t, "1970-01-01 00:00:00", filter.FormatUnix(0, time.UTC))
	assert.Equal(t, "1970-01-01 08:00:00", filter.FormatUnix(0, shanghai))
	assert.Equal(t, "1969-12-31 23:59:59", filter.FormatUnix(-1, time.UTC))
}

func Test_Build_DefaultsToNormalStatusAndNow(t *testing.T) {
	clauses := testBuilder().Build(mustParse(t, ""), filter.ActivityListing)

	assert.Equal(t, []string{"ac.status = ?", "ac.expirationtime > ?"}, clauses.Fragments())
	assert.Equal(t, []any{"normal", "2025-03-14 09:26:53"}, clauses.Values())
}

func Test_Build_StatusWildcard(t *testing.T) {
	for _, raw := range []string{"status=all", "status=*"} {
		clauses := testBuilder().Build(mustParse(t, raw), filter.ActivityListing)
		assert.Equal(t, []string{"ac.expirationtime > ?"}, clauses.Fragments(), raw)
	}

	clauses := testBuilder().Build(mustParse(t, "status=hidden"), filter.ActivityListing)
	assert.Equal(t, []any{"hidden", "2025-03-14 09:26:53"}, clauses.Values())
}

func Test_Build_PredicateKinds(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		target    filter.Target
		fragments []string
		values    []any
	}{
		{
			name:      "location_contains",
			query:     "location=Park&compare_time=1700000000",
			target:    filter.ActivityListing,
			fragments: []string{"ac.status = ?", "ac.location LIKE ?", "ac.expirationtime > ?"},
			values:    []any{"normal", "%Park%", "2023-11-14 22:13:20"},
		},
		{
			name:      "blank_location_is_skipped",
			query:     "location=%20%20&compare_time=0",
			target:    filter.ActivityListing,
			fragments: []string{"ac.status = ?"},
			values:    []any{"normal"},
		},
		{
			name:      "scalar_createtime_is_exact_match_and_cutoff",
			query:     "createtime=1700000000",
			target:    filter.ActivityListing,
			fragments: []string{"ac.status = ?", "ac.createtime = ?", "ac.expirationtime > ?"},
			values:    []any{"normal", int64(1700000000), "2023-11-14 22:13:20"},
		},
		{
			name:      "delimited_createtime_is_between",
			query:     "createtime=100,200&compare_time=0",
			target:    filter.ActivityListing,
			fragments: []string{"ac.status = ?", "ac.createtime BETWEEN ? AND ?"},
			values:    []any{"normal", int64(100), int64(200)},
		},
		{
			name:      "array_createtime_is_between",
			query:     "createtime[]=100&createtime[]=200&compare_time=0",
			target:    filter.ActivityListing,
			fragments: []string{"ac.status = ?", "ac.createtime BETWEEN ? AND ?"},
			values:    []any{"normal", int64(100), int64(200)},
		},
		{
			name:      "start_only_is_open_ended",
			query:     "createtime_start=500&compare_time=0",
			target:    filter.ActivityListing,
			fragments: []string{"ac.status = ?", "ac.createtime BETWEEN ? AND ?"},
			values:    []any{"normal", int64(500), int64(math.MaxInt64)},
		},
		{
			name:      "end_only_starts_at_zero",
			query:     "endtime=900&compare_time=0",
			target:    filter.ActivityListing,
			fragments: []string{"ac.status = ?", "ac.createtime BETWEEN ? AND ?"},
			values:    []any{"normal", int64(0), int64(900)},
		},
		{
			name:      "scalar_createtime_with_start_end",
			query:     "createtime=600&starttime=500&endtime=900&compare_time=0",
			target:    filter.ActivityListing,
			fragments: []string{"ac.status = ?", "ac.createtime = ?", "ac.createtime BETWEEN ? AND ?"},
			values:    []any{"normal", int64(600), int64(500), int64(900)},
		},
		{
			name:   "article_search_orders_content_first",
			query:  "tag=run&tickets=free&registration=online&location=Hyde&compare_time=1700000000",
			target: filter.ArticleSearch,
			fragments: []string{
				"aa.Tag LIKE ?", "aa.Tickets = ?", "aa.Registration LIKE ?",
				"ac.location LIKE ?", "ac.expirationtime > ?",
			},
			values: []any{"%run%", "free", "%online%", "%Hyde%", "2023-11-14 22:13:20"},
		},
		{
			name:      "article_search_uses_created_filter_alias",
			query:     "created_filter=1,2&compare_time=0",
			target:    filter.ArticleSearch,
			fragments: []string{"ac.createtime BETWEEN ? AND ?"},
			values:    []any{int64(1), int64(2)},
		},
		{
			name:      "content_fields_ignored_without_content_table",
			query:     "tag=run&compare_time=0",
			target:    filter.ActivityListing,
			fragments: []string{"ac.status = ?"},
			values:    []any{"normal"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clauses := testBuilder().Build(mustParse(t, tc.query), tc.target)
			assert.Equal(t, tc.fragments, clauses.Fragments())
			assert.Equal(t, tc.values, clauses.Values())
		})
	}
}

func Test_Build_CompareTime(t *testing.T) {
	b := testBuilder()

	disabled := b.Build(mustParse(t, "compare_time=0"), filter.ActivityListing)
	assert.NotContains(t, disabled.Fragments(), "ac.expirationtime > ?")

	explicit := b.Build(mustParse(t, "compare_time=86400&createtime=5"), filter.ActivityListing)
	assert.Equal(t, "1970-01-02 00:00:00", explicit.Values()[len(explicit.Values())-1])

	absent := b.Build(mustParse(t, ""), filter.ActivityListing)
	assert.Equal(t, fixedNow.Format(filter.DateTimeLayout), absent.Values()[len(absent.Values())-1])
}

func Test_Build_IsDeterministic(t *testing.T) {
	p := mustParse(t, "location=Park&createtime=1,9&tag=x&compare_time=1700000000")
	b := filter.NewBuilder(time.UTC)

	first := b.Build(p, filter.ArticleSearch)
	second := b.Build(p, filter.ArticleSearch)

	assert.Equal(t, first.Fragments(), second.Fragments())
	assert.Equal(t, first.Values(), second.Values())
}

func Test_Contains_EscapesWildcards(t *testing.T) {
	p := filter.Contains{Column: "ac.location", Value: `50%_off\`}
	assert.Equal(t, []any{`%50\%\_off\\%`}, p.Args())
}

func Test_Clauses_ValuesAlignWithPlaceholders(t *testing.T) {
	clauses := testBuilder().Build(
		mustParse(t, "tag=a&tickets=b&registration=c&location=d&createtime=1,2&compare_time=3"),
		filter.ArticleSearch,
	)

	placeholders := 0
	for _, f := range clauses.Fragments() {
		placeholders += len(regexp.MustCompile(`\?`).FindAllString(f, -1))
	}
	assert.Equal(t, placeholders, len(clauses.Values()))
}
