package cron

import (
	"fmt"
	"time"

	"github.com/campuslink/portal-api/model"
)

const jobDeactivateExpired = "deactivate_expired_partnerships"

// DeactivateExpiredPartnerships flips partnerships whose end date has passed
// to inactive. Dashboards derive their expired windows from date_ended
// directly, so this only keeps the stored status field honest for list
// filters and the public viewing section.
func (m *CronManager) DeactivateExpiredPartnerships() {
	now := time.Now()

	result := m.db.Model(&model.Partnership{}).
		Where("status = ?", model.PartnershipStatusActive).
		Where("date_ended IS NOT NULL AND date_ended < ?", now).
		Update("status", model.PartnershipStatusInactive)

	if result.Error != nil {
		m.logJobError(jobDeactivateExpired, fmt.Errorf("failed to deactivate partnerships: %w", result.Error))
		return
	}

	m.logJobComplete(jobDeactivateExpired, fmt.Sprintf("Deactivated %d expired partnerships", result.RowsAffected))
}
