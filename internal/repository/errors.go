// Package repository holds the SQL side of the listing API: query assembly,
// page fetching, and the register write path. Sentinel errors below let
// handlers tell a store failure apart from a missing reward row.
package repository

import (
	"errors"
	"fmt"
)

// ErrDataAccess wraps every failure coming from the database. Handlers
// translate it into a 500 envelope carrying the underlying message.
var ErrDataAccess = errors.New("data access failed")

// ErrRewardNotFound is returned by Register when the activity has no reward
// row. It is not a failure: nothing was changed.
var ErrRewardNotFound = errors.New("reward not found")

func dataAccess(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDataAccess, op, err)
}
