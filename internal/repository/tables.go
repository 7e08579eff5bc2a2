package repository

import (
	"fmt"
	"regexp"
)

const (
	tableActivity = "activity"
	tableReward   = "activity_reward"
	tableArticle  = "active_article"
)

var prefixPattern = regexp.MustCompile(`^[A-Za-z0-9_]*$`)

// Tables applies the deployment's table-name prefix (e.g. "fa_").
type Tables struct {
	prefix string
}

// NewTables validates prefix; it ends up verbatim in SQL text.
func NewTables(prefix string) (Tables, error) {
	if !prefixPattern.MatchString(prefix) {
		return Tables{}, fmt.Errorf("invalid table prefix %q", prefix)
	}
	return Tables{prefix: prefix}, nil
}

// Name returns the prefixed table name.
func (t Tables) Name(base string) string { return t.prefix + base }
