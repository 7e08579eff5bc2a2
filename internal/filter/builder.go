package filter

import (
	"math"
	"strings"
	"time"
)

// Target describes which columns a listing filters on. ContentAlias is empty
// when the content (article) table is not part of the query.
type Target struct {
	ActivityAlias string
	ContentAlias  string
	// DefaultStatus is applied when Params.Status is empty. Empty means no default.
	DefaultStatus string
}

var (
	// ActivityListing filters the activity table directly and lists only
	// normal activities unless told otherwise.
	ActivityListing = Target{ActivityAlias: "ac", DefaultStatus: StatusNormal}
	// ArticleSearch filters articles joined to their activity.
	ArticleSearch = Target{ActivityAlias: "ac", ContentAlias: "aa"}
)

// Builder turns Params into an ordered predicate list.
type Builder struct {
	// Location is the zone expiration timestamps are stored in. Nil means time.Local.
	Location *time.Location
	// Now is the wall clock; nil means time.Now.
	Now func() time.Time
}

// NewBuilder returns a Builder using the wall clock.
func NewBuilder(loc *time.Location) Builder {
	return Builder{Location: loc, Now: time.Now}
}

// Build emits content predicates, then activity predicates, then the expiration
// cutoff. Identical Params (with an explicit compare_time) give identical output.
func (b Builder) Build(p Params, t Target) Clauses {
	var out Clauses

	if t.ContentAlias != "" {
		if p.Tag != "" {
			out = append(out, Contains{Column: col(t.ContentAlias, "Tag"), Value: p.Tag})
		}
		if p.Tickets != "" {
			out = append(out, Equals{Column: col(t.ContentAlias, "Tickets"), Value: p.Tickets})
		}
		if p.Registration != "" {
			out = append(out, Contains{Column: col(t.ContentAlias, "Registration"), Value: p.Registration})
		}
	}

	ac := t.ActivityAlias
	status := p.Status
	if status == "" {
		status = t.DefaultStatus
	}
	if status != "" && status != StatusAny && status != "*" {
		out = append(out, Equals{Column: col(ac, "status"), Value: status})
	}

	if loc := strings.TrimSpace(p.Location); loc != "" {
		out = append(out, Contains{Column: col(ac, "location"), Value: loc})
	}

	switch p.Created.Kind {
	case RangeExact:
		out = append(out, Equals{Column: col(ac, "createtime"), Value: p.Created.From})
	case RangeBetween:
		out = append(out, Between{Column: col(ac, "createtime"), Lower: p.Created.From, Upper: p.Created.To})
	}

	if p.CreatedStart != nil || p.CreatedEnd != nil {
		r := Between{Column: col(ac, "createtime"), Lower: 0, Upper: math.MaxInt64}
		if p.CreatedStart != nil {
			r.Lower = *p.CreatedStart
		}
		if p.CreatedEnd != nil {
			r.Upper = *p.CreatedEnd
		}
		out = append(out, r)
	}

	if at, ok := b.compareTime(p); ok {
		out = append(out, AfterTimestamp{Column: col(ac, "expirationtime"), At: FormatUnix(at, b.Location)})
	}
	return out
}

// compareTime resolves the expiration cutoff: compare_time, then a scalar
// createtime, then now. compare_time=0 disables the cutoff.
func (b Builder) compareTime(p Params) (int64, bool) {
	switch {
	case p.CompareTime != nil:
		return *p.CompareTime, *p.CompareTime != 0
	case p.Created.Kind == RangeExact:
		return p.Created.From, true
	}
	return b.CurrentTime().Unix(), true
}

// CurrentTime reads the builder's clock.
func (b Builder) CurrentTime() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

func col(alias, name string) string {
	if alias == "" {
		return name
	}
	return alias + "." + name
}
