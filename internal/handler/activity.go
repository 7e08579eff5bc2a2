package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/charityevents/events-api/internal/filter"
	"github.com/charityevents/events-api/internal/model"
	"github.com/charityevents/events-api/internal/queue"
	"github.com/charityevents/events-api/internal/repository"
)

type ActivityStore interface {
	Search(ctx context.Context, p filter.Params) (repository.Page[model.Activity], error)
	Register(ctx context.Context, activityID int64) (*model.Reward, error)
}

type RegistrationPublisher interface {
	PublishRegistration(ctx context.Context, event queue.ParticipantRegisteredEvent) error
}

// ActivityHandler serves the activity listing and registration endpoints.
// Publisher may be nil when the broker is disabled.
type ActivityHandler struct {
	Activities ActivityStore
	Publisher  RegistrationPublisher
	// MaxLimit caps page size when > 0.
	MaxLimit int
	Location *time.Location
	Now      func() time.Time
}

// GetActivity lists activities. data is the row list and meta carries
// total/page/limit.
func (h *ActivityHandler) GetActivity(c echo.Context) error {
	p, err := listParams(c, h.MaxLimit)
	if err != nil {
		return fail(c, err, []model.Activity{})
	}
	page, err := h.Activities.Search(c.Request().Context(), p)
	if err != nil {
		return fail(c, err, []model.Activity{})
	}
	return ok(c, page.List, PageMeta{Total: page.Total, Page: page.Page, Limit: page.Limit})
}

type registerRequest struct {
	ActivityID activityID `json:"activity_id" form:"activity_id" query:"activity_id"`
}

// Register adds a participant to the activity's reward row and returns the
// refreshed record. The broker notification never affects the response.
func (h *ActivityHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, fmt.Errorf("%w: activity_id: %v", filter.ErrInvalidInput, err), nil)
	}
	if req.ActivityID <= 0 {
		return fail(c, fmt.Errorf("%w: activity_id must be a positive integer", filter.ErrInvalidInput), nil)
	}

	reward, err := h.Activities.Register(c.Request().Context(), int64(req.ActivityID))
	if err != nil {
		return fail(c, err, nil)
	}

	if h.Publisher != nil {
		h.publish(c, reward)
	}
	return ok(c, reward, nil)
}

func (h *ActivityHandler) publish(c echo.Context, reward *model.Reward) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	loc := h.Location
	if loc == nil {
		loc = time.Local
	}
	ev := queue.ParticipantRegisteredEvent{
		ActivityID:       reward.ActivityID,
		RewardID:         reward.ID,
		ParticipantCount: reward.ParticipantCount,
		RegistrationFee:  reward.RegistrationFee,
		HaveMoney:        reward.HaveMoney,
		RegisteredAt:     filter.FormatUnix(now().Unix(), loc),
		RequestID:        c.Response().Header().Get(echo.HeaderXRequestID),
	}
	// Detached from the request so a client disconnect does not cancel it.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), 3*time.Second)
	defer cancel()
	if err := h.Publisher.PublishRegistration(ctx, ev); err != nil {
		log.Warn().Err(err).Int64("activity_id", ev.ActivityID).Msg("registration event not published")
	}
}

// listParams parses the filter query and applies the page-size cap.
func listParams(c echo.Context, maxLimit int) (filter.Params, error) {
	p, err := filter.ParseParams(c.QueryParams())
	if err != nil {
		return filter.Params{}, err
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p, nil
}

// activityID accepts a JSON number, a quoted number, or a form value.
type activityID int64

func (a *activityID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	return a.UnmarshalParam(s)
}

func (a *activityID) UnmarshalParam(s string) error {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return fmt.Errorf("not an integer: %q", s)
	}
	*a = activityID(n)
	return nil
}
