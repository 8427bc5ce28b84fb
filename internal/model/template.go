package model

import (
	"time"

	"everyday-planner/internal/recurrence"
)

// TaskTemplate is a recurrence rule that produces task instances.
type TaskTemplate struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	UserID           uint            `gorm:"index" json:"-"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	EstimatedMinutes int             `json:"estimatedMinutes"`
	Priority         int             `json:"priority"` // 1..5, stored and displayed only
	RecurrenceKind   recurrence.Kind `gorm:"index" json:"recurrenceType"`
	DayOfWeek        *int            `json:"dayOfWeek"`        // ISO 1=Monday..7=Sunday, WEEKLY only
	SpecificDate     *time.Time      `json:"specificDate"`     // SPECIFIC_DATE only
	IntervalDays     *int            `json:"intervalDays"`     // INTERVAL_DAYS only
	DefaultStartTime *string         `json:"defaultStartTime"` // HH:MM
	ActiveFrom       *time.Time      `json:"activeFrom"`
	ActiveTo         *time.Time      `json:"activeTo"`
	Enabled          bool            `gorm:"default:true" json:"enabled"`
	CreatedAt        time.Time       `json:"-"`
	UpdatedAt        time.Time       `json:"-"`
}

// Schedule builds the recurrence schedule for the template. Stored templates
// are validated on write, so a failure here means the row was corrupted.
func (t TaskTemplate) Schedule() (recurrence.Schedule, error) {
	rule, err := recurrence.New(t.RecurrenceKind, recurrence.Params{
		DayOfWeek:    t.DayOfWeek,
		SpecificDate: t.SpecificDate,
		IntervalDays: t.IntervalDays,
		ActiveFrom:   t.ActiveFrom,
	})
	if err != nil {
		return recurrence.Schedule{}, err
	}
	return recurrence.Schedule{
		Rule:       rule,
		ActiveFrom: t.ActiveFrom,
		ActiveTo:   t.ActiveTo,
		Enabled:    t.Enabled,
	}, nil
}
