package stats

import (
	"sort"
	"time"

	"github.com/campuslink/portal-api/model"
)

// WindowPolicy selects how the "ending soon" reference window is anchored.
// The superadmin and department dashboards use a rolling 30-day window; the
// calendar-month window covers partnerships ending within the current month.
// The two are distinct and must not be conflated.
type WindowPolicy int

const (
	WindowNext30Days WindowPolicy = iota
	WindowCalendarMonth
)

// recentlyExpiredLimit caps the expired list at the five entries shown.
const recentlyExpiredLimit = 5

// EndingSoon returns the partnerships whose end date falls inside the window
// the policy derives from now, inclusive at both edges. Partnerships with no
// end date are excluded.
func EndingSoon(partnerships []model.Partnership, now time.Time, policy WindowPolicy) []model.Partnership {
	var start, end time.Time
	switch policy {
	case WindowCalendarMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	default:
		start = now
		end = now.AddDate(0, 0, 30)
	}
	out := []model.Partnership{}
	for _, p := range partnerships {
		if p.DateEnded == nil {
			continue
		}
		if p.DateEnded.Before(start) || p.DateEnded.After(end) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// RecentlyExpired returns the five most recently ended partnerships, most
// recent first. Only partnerships whose end date is strictly before now
// qualify.
func RecentlyExpired(partnerships []model.Partnership, now time.Time) []model.Partnership {
	expired := []model.Partnership{}
	for _, p := range partnerships {
		if p.DateEnded != nil && p.DateEnded.Before(now) {
			expired = append(expired, p)
		}
	}
	sort.SliceStable(expired, func(i, j int) bool {
		return expired[i].DateEnded.After(*expired[j].DateEnded)
	})
	if len(expired) > recentlyExpiredLimit {
		expired = expired[:recentlyExpiredLimit]
	}
	return expired
}

// Latest returns the n most recently created partnerships, newest first.
func Latest(partnerships []model.Partnership, n int) []model.Partnership {
	out := make([]model.Partnership, len(partnerships))
	copy(out, partnerships)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
