package stats

import (
	"testing"
	"time"

	"github.com/campuslink/portal-api/model"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestEndingSoonCalendarMonth(t *testing.T) {
	// Fixed reference: mid-June 2025. Last day of the month is included,
	// the 1st of July is not.
	now := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)
	partnerships := []model.Partnership{
		{ID: 1, DateEnded: timePtr(time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC))},
		{ID: 2, DateEnded: timePtr(time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC))},
		{ID: 3, DateEnded: timePtr(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))},
		{ID: 4}, // ongoing, no end date
	}

	got := EndingSoon(partnerships, now, WindowCalendarMonth)
	ids := map[uint]bool{}
	for _, p := range got {
		ids[p.ID] = true
	}
	if len(got) != 2 || !ids[1] || !ids[3] {
		t.Fatalf("calendar-month window = %+v, want partnerships 1 and 3", ids)
	}
}

func TestEndingSoonNext30Days(t *testing.T) {
	now := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)
	partnerships := []model.Partnership{
		{ID: 1, DateEnded: timePtr(now.AddDate(0, 0, 29))},
		{ID: 2, DateEnded: timePtr(now.AddDate(0, 0, 31))},
		{ID: 3, DateEnded: timePtr(now.AddDate(0, 0, -1))}, // already over
		{ID: 4, DateEnded: timePtr(now.AddDate(0, 0, 30))}, // boundary, inclusive
	}

	got := EndingSoon(partnerships, now, WindowNext30Days)
	ids := map[uint]bool{}
	for _, p := range got {
		ids[p.ID] = true
	}
	if len(got) != 2 || !ids[1] || !ids[4] {
		t.Fatalf("30-day window = %+v, want partnerships 1 and 4", ids)
	}
}

func TestRecentlyExpiredTopFive(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	var partnerships []model.Partnership
	// Seven expired partnerships with distinct end dates, one still active.
	for i := 1; i <= 7; i++ {
		partnerships = append(partnerships, model.Partnership{
			ID:        uint(i),
			DateEnded: timePtr(now.AddDate(0, 0, -i)),
		})
	}
	partnerships = append(partnerships, model.Partnership{ID: 8, DateEnded: timePtr(now.AddDate(0, 0, 5))})

	got := RecentlyExpired(partnerships, now)
	if len(got) != 5 {
		t.Fatalf("expired = %d entries, want 5", len(got))
	}
	// Most recent first: ids 1..5.
	for i, p := range got {
		if p.ID != uint(i+1) {
			t.Errorf("expired[%d] = id %d, want %d", i, p.ID, i+1)
		}
	}
}

func TestRecentlyExpiredExcludesExactNow(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	partnerships := []model.Partnership{
		{ID: 1, DateEnded: timePtr(now)}, // not strictly before now
	}
	if got := RecentlyExpired(partnerships, now); len(got) != 0 {
		t.Fatalf("expired = %+v, want empty for date_ended == now", got)
	}
}

func TestLatest(t *testing.T) {
	base := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	var partnerships []model.Partnership
	for i := 0; i < 5; i++ {
		partnerships = append(partnerships, model.Partnership{
			ID:        uint(i + 1),
			CreatedAt: base.AddDate(0, 0, i),
		})
	}

	got := Latest(partnerships, 3)
	if len(got) != 3 {
		t.Fatalf("latest = %d entries, want 3", len(got))
	}
	if got[0].ID != 5 || got[1].ID != 4 || got[2].ID != 3 {
		t.Errorf("latest = [%d %d %d], want [5 4 3]", got[0].ID, got[1].ID, got[2].ID)
	}

	// Asking for more than exists returns everything, newest first.
	if all := Latest(partnerships, 10); len(all) != 5 || all[0].ID != 5 {
		t.Errorf("latest(10) = %d entries first id %d", len(all), all[0].ID)
	}
}
