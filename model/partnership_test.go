package model

import (
	"testing"
	"time"
)

func TestPartnershipExpired(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	ongoing := Partnership{DateStarted: now.AddDate(-1, 0, 0)}
	if ongoing.Expired(now) {
		t.Error("a partnership without an end date never expires")
	}

	past := now.AddDate(0, -1, 0)
	ended := Partnership{DateStarted: now.AddDate(-1, 0, 0), DateEnded: &past}
	if !ended.Expired(now) {
		t.Error("a partnership ended a month ago is expired")
	}

	future := now.AddDate(0, 1, 0)
	upcoming := Partnership{DateStarted: now.AddDate(-1, 0, 0), DateEnded: &future}
	if upcoming.Expired(now) {
		t.Error("a partnership ending next month is not expired yet")
	}

	exact := Partnership{DateStarted: now.AddDate(-1, 0, 0), DateEnded: &now}
	if exact.Expired(now) {
		t.Error("an end date equal to now is not yet past")
	}
}
