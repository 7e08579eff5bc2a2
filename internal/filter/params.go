package filter

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidInput marks a malformed filter value. Handlers answer it with 400
// before any storage access.
var ErrInvalidInput = errors.New("invalid input")

const (
	// StatusNormal is the only listable activity status.
	StatusNormal = "normal"
	// StatusHidden hides an activity from listings.
	StatusHidden = "hidden"
	// StatusAny disables the status predicate.
	StatusAny = "all"

	DefaultPage  = 1
	DefaultLimit = 10
)

// RangeKind discriminates the shape of a creation-time filter.
type RangeKind int

const (
	RangeNone RangeKind = iota
	RangeExact
	RangeBetween
)

// CreateRange is the parsed "createtime" filter: nothing, a single instant, or
// an inclusive [From, To] interval.
type CreateRange struct {
	Kind RangeKind
	From int64
	To   int64
}

// Params is the recognized subset of a listing query string. Pointer fields are
// nil when the caller did not send them.
type Params struct {
	Status       string
	Location     string
	Tag          string
	Tickets      string
	Registration string

	Created      CreateRange
	CreatedStart *int64
	CreatedEnd   *int64

	// CompareTime overrides "now" for the expiration cutoff. 0 disables it.
	CompareTime *int64

	Page  int
	Limit int
}

// PageOffset is the number of rows skipped before page. A page too large for
// the offset to fit in an int is invalid input.
func PageOffset(page, limit int) (int, error) {
	if page < 1 || limit < 1 {
		return 0, fmt.Errorf("%w: page and limit must be positive", ErrInvalidInput)
	}
	if page-1 > math.MaxInt/limit {
		return 0, fmt.Errorf("%w: page %d is out of range", ErrInvalidInput, page)
	}
	return (page - 1) * limit, nil
}

// ParseParams validates and converts a decoded query string. Numeric filters that
// do not parse fail with ErrInvalidInput; page and limit fall back to defaults.
func ParseParams(q url.Values) (Params, error) {
	p := Params{
		Status:       strings.TrimSpace(q.Get("status")),
		Location:     strings.TrimSpace(q.Get("location")),
		Tag:          strings.TrimSpace(q.Get("tag")),
		Tickets:      strings.TrimSpace(q.Get("tickets")),
		Registration: strings.TrimSpace(q.Get("registration")),
		Page:         positiveOr(q.Get("page"), DefaultPage),
		Limit:        positiveOr(q.Get("limit"), DefaultLimit),
	}
	if _, err := PageOffset(p.Page, p.Limit); err != nil {
		return Params{}, err
	}

	raw := rangeValues(q, "createtime")
	if len(raw) == 0 {
		raw = rangeValues(q, "created_filter")
	}
	created, err := ParseCreateRange(raw)
	if err != nil {
		return Params{}, err
	}
	p.Created = created

	if p.CreatedStart, err = optionalInt(q, "createtime_start", "starttime"); err != nil {
		return Params{}, err
	}
	if p.CreatedEnd, err = optionalInt(q, "createtime_end", "endtime"); err != nil {
		return Params{}, err
	}
	if p.Created.Kind == RangeBetween && (p.CreatedStart != nil || p.CreatedEnd != nil) {
		return Params{}, fmt.Errorf("%w: createtime range cannot be combined with createtime_start/createtime_end", ErrInvalidInput)
	}
	if p.CreatedStart != nil && p.CreatedEnd != nil && *p.CreatedStart > *p.CreatedEnd {
		return Params{}, fmt.Errorf("%w: createtime_start is after createtime_end", ErrInvalidInput)
	}

	if p.CompareTime, err = optionalInt(q, "compare_time"); err != nil {
		return Params{}, err
	}
	if p.CompareTime != nil && *p.CompareTime < 0 {
		return Params{}, fmt.Errorf("%w: compare_time must not be negative", ErrInvalidInput)
	}
	return p, nil
}

// ParseCreateRange accepts no value, a scalar, a two-element list, or a single
// "from,to" string. Both bounds are inclusive.
func ParseCreateRange(vals []string) (CreateRange, error) {
	switch {
	case len(vals) == 0:
		return CreateRange{}, nil
	case len(vals) == 1 && strings.Contains(vals[0], ","):
		parts := strings.Split(vals[0], ",")
		if len(parts) != 2 {
			return CreateRange{}, fmt.Errorf("%w: createtime %q must hold exactly two bounds", ErrInvalidInput, vals[0])
		}
		return betweenRange(parts[0], parts[1])
	case len(vals) == 1:
		n, err := parseInt("createtime", vals[0])
		if err != nil {
			return CreateRange{}, err
		}
		return CreateRange{Kind: RangeExact, From: n, To: n}, nil
	case len(vals) == 2:
		return betweenRange(vals[0], vals[1])
	default:
		return CreateRange{}, fmt.Errorf("%w: createtime accepts at most two values", ErrInvalidInput)
	}
}

func betweenRange(lo, hi string) (CreateRange, error) {
	from, err := parseInt("createtime", lo)
	if err != nil {
		return CreateRange{}, err
	}
	to, err := parseInt("createtime", hi)
	if err != nil {
		return CreateRange{}, err
	}
	if from > to {
		return CreateRange{}, fmt.Errorf("%w: createtime lower bound %d is after upper bound %d", ErrInvalidInput, from, to)
	}
	return CreateRange{Kind: RangeBetween, From: from, To: to}, nil
}

// rangeValues collects key and key[] (PHP-style array syntax), dropping blanks.
func rangeValues(q url.Values, key string) []string {
	var out []string
	for _, k := range []string{key, key + "[]"} {
		for _, v := range q[k] {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// optionalInt reads the first non-empty key among keys.
func optionalInt(q url.Values, keys ...string) (*int64, error) {
	for _, k := range keys {
		v := strings.TrimSpace(q.Get(k))
		if v == "" {
			continue
		}
		n, err := parseInt(k, v)
		if err != nil {
			return nil, err
		}
		return &n, nil
	}
	return nil, nil
}

func parseInt(name, v string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrInvalidInput, name, v)
	}
	return n, nil
}

func positiveOr(v string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return def
	}
	return n
}
