package loan

import (
	"fmt"
	"time"

	"lagerstyring-client/internal/model"
)

// DefaultPeriodDays is the standard loan period.
const DefaultPeriodDays = 7

// Scheduler computes loan dates. It performs no I/O; given the same inputs
// it always builds the same activity.
type Scheduler struct {
	PeriodDays int
}

// NewScheduler creates a scheduler with the given loan period; zero or
// negative falls back to DefaultPeriodDays.
func NewScheduler(periodDays int) Scheduler {
	if periodDays <= 0 {
		periodDays = DefaultPeriodDays
	}
	return Scheduler{PeriodDays: periodDays}
}

// BuildActivity assembles the loan record for item starting at now. The due
// date is now plus the loan period, shifted off a weekend in a single pass:
// a Saturday moves 2 days and a Sunday 1 day, judged on the unadjusted date
// and never re-checked after the shift. Record ID and lifecycle fields are
// left for the server to assign.
func (s Scheduler) BuildActivity(userID int64, item model.EnrichedDevice, now time.Time) model.Activity {
	end := now.AddDate(0, 0, s.PeriodDays)
	switch end.Weekday() {
	case time.Saturday:
		end = end.AddDate(0, 0, 2)
	case time.Sunday:
		end = end.AddDate(0, 0, 1)
	}

	return model.Activity{
		UserID:       userID,
		DeviceID:     item.Device.ID,
		ActivityType: model.ActivityTypeBorrow,
		StartDate:    now,
		EndDate:      end,
		CreatedAt:    now,
		Notes:        fmt.Sprintf("%s with ID: %d has been borrowed.", item.ModelName(), item.Device.ID),
	}
}
