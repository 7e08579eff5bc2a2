package filter

import (
	"strings"
)

// Predicate is one SQL boolean condition with its bound values. The set of
// implementations is closed: Equals, Contains, Between and AfterTimestamp.
type Predicate interface {
	// SQL returns the fragment with one "?" per value returned by Args.
	SQL() string
	Args() []any
	isPredicate()
}

// Equals matches Column exactly.
type Equals struct {
	Column string
	Value  any
}

func (p Equals) SQL() string { return p.Column + " = ?" }
func (p Equals) Args() []any { return []any{p.Value} }
func (Equals) isPredicate() {}

// Contains matches rows whose Column contains Value as a substring. LIKE
// wildcards inside Value are escaped so they match literally.
type Contains struct {
	Column string
	Value  string
}

func (p Contains) SQL() string { return p.Column + " LIKE ?" }
func (p Contains) Args() []any { return []any{"%" + escapeLike(p.Value) + "%"} }
func (Contains) isPredicate() {}

// Between is an inclusive integer range on Column.
type Between struct {
	Column string
	Lower  int64
	Upper  int64
}

func (p Between) SQL() string { return p.Column + " BETWEEN ? AND ?" }
func (p Between) Args() []any { return []any{p.Lower, p.Upper} }
func (Between) isPredicate() {}

// AfterTimestamp keeps rows whose text timestamp Column is strictly later than At.
// At is already normalized with FormatUnix.
type AfterTimestamp struct {
	Column string
	At     string
}

func (p AfterTimestamp) SQL() string { return p.Column + " > ?" }
func (p AfterTimestamp) Args() []any { return []any{p.At} }
func (AfterTimestamp) isPredicate() {}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

// Clauses is an ordered predicate list. Fragment i is bound by the values that
// start right after the values of fragments 0..i-1.
type Clauses []Predicate

// Fragments returns the SQL fragments in order.
func (c Clauses) Fragments() []string {
	out := make([]string, 0, len(c))
	for _, p := range c {
		out = append(out, p.SQL())
	}
	return out
}

// Values returns the bound values of all fragments, flattened in order.
func (c Clauses) Values() []any {
	out := make([]any, 0, len(c))
	for _, p := range c {
		out = append(out, p.Args()...)
	}
	return out
}
