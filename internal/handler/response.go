package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/charityevents/events-api/internal/filter"
	"github.com/charityevents/events-api/internal/repository"
)

const (
	CodeOK  = 200
	MsgOK   = "success"
	MsgNone = "no reward record for this activity"
)

// Envelope is the body of every API response. Failures carry the HTTP status
// as Code.
type Envelope struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
	Meta any    `json:"meta,omitempty"`
}

// PageMeta accompanies list data on the activity listing.
type PageMeta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func ok(c echo.Context, data, meta any) error {
	return c.JSON(http.StatusOK, Envelope{Code: CodeOK, Msg: MsgOK, Data: data, Meta: meta})
}

// fail maps err onto the envelope. empty is the data value used on failure:
// [] for list endpoints, nil for single records.
func fail(c echo.Context, err error, empty any) error {
	status := http.StatusInternalServerError
	msg := err.Error()
	switch {
	case errors.Is(err, filter.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrRewardNotFound):
		status = http.StatusNotFound
		msg = MsgNone
	default:
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("uri", c.Request().RequestURI).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Msg("request failed")
	}
	return c.JSON(status, Envelope{Code: status, Msg: msg, Data: empty})
}
