package model

import "time"

// Phase is the display lifecycle of an activity, computed from status and
// timestamps for every response.
type Phase string

const (
	PhaseUpcoming  Phase = "upcoming"
	PhaseOngoing   Phase = "ongoing"
	PhaseEnded     Phase = "ended"
	PhaseSuspended Phase = "suspended"
)

const expirationLayout = "2006-01-02 15:04:05"

// DerivePhase classifies an activity at instant now. expiration is parsed in
// loc; an unparsable or missing expiration never ends the activity.
func DerivePhase(status string, createdAt int64, expiration *string, now time.Time, loc *time.Location) Phase {
	if status != "normal" {
		return PhaseSuspended
	}
	if createdAt > now.Unix() {
		return PhaseUpcoming
	}
	if expiration != nil {
		if loc == nil {
			loc = time.Local
		}
		if exp, err := time.ParseInLocation(expirationLayout, *expiration, loc); err == nil && !exp.After(now) {
			return PhaseEnded
		}
	}
	return PhaseOngoing
}

// WithPhase fills Phase on every activity.
func WithPhase(list []Activity, now time.Time, loc *time.Location) {
	for i := range list {
		a := &list[i]
		a.Phase = DerivePhase(a.Status, a.CreateTime, a.ExpirationTime, now, loc)
	}
}
