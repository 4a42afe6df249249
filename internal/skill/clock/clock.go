// Package clock computes target date-times from "now" and extracted offsets.
package clock

import (
	"time"

	skillerrors "timeskill/internal/common/errors"
	"timeskill/internal/skill/parse"
)

// Clock produces the current time, optionally converted to a timezone. The
// time source is injectable so tests can pin "now".
type Clock struct {
	nowFn func() time.Time
}

func New() *Clock {
	return &Clock{nowFn: time.Now}
}

// NewFixed returns a Clock pinned to the given instant.
func NewFixed(t time.Time) *Clock {
	return &Clock{nowFn: func() time.Time { return t }}
}

// Now returns the local current time when tzID is empty, otherwise the
// current time converted to the IANA zone tzID.
func (c *Clock) Now(tzID string) (time.Time, error) {
	now := c.nowFn()
	if tzID == "" {
		return now, nil
	}
	loc, err := time.LoadLocation(tzID)
	if err != nil {
		return time.Time{}, skillerrors.NewTimezoneInvalidError(tzID, err)
	}
	return now.In(loc), nil
}

// Compute adds the duration to the base using calendar-aware arithmetic.
// Weeks and days go through AddDate so month and year boundaries, and the
// wall clock across DST transitions, come out calendar-correct; the clock
// portion is plain elapsed time. Zero duration is the identity.
func Compute(base time.Time, d parse.Duration) time.Time {
	t := base.AddDate(0, 0, d.Weeks*7+d.Days)
	return t.Add(d.Timespan())
}
