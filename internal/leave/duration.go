package leave

import (
	"time"

	leaveerrors "leavedesk/internal/leave/errors"
)

// ComputeDuration returns the inclusive day count between two calendar
// dates: a single-day leave has duration 1. Both inputs are normalized to
// midnight first so time-of-day never skews the count.
func ComputeDuration(start, end time.Time) (int, error) {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	days := int(e.Sub(s).Hours()/24) + 1
	if days < 1 {
		return 0, leaveerrors.ErrInvalidDateRange
	}
	return days, nil
}
