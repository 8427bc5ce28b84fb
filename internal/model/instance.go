package model

import "time"

// TaskStatus is the lifecycle state of a task instance.
type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDING"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusCompleted  TaskStatus = "COMPLETED"
	StatusCancelled  TaskStatus = "CANCELLED"
)

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// TaskInstance is a single day's concrete, trackable unit of work. The
// composite unique index makes plan generation idempotent per
// (user, template, plan date); manual and ad-hoc instances carry a NULL
// template id and are never deduplicated.
type TaskInstance struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           uint       `gorm:"index;index:idx_user_template_date,unique" json:"-"`
	TemplateID       *uint      `gorm:"index:idx_user_template_date,unique" json:"templateId"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	PlanDate         time.Time  `gorm:"index;index:idx_user_template_date,unique" json:"planDate"`
	PlannedStartTime *string    `json:"plannedStartTime"` // HH:MM
	PlannedMinutes   int        `json:"plannedMinutes"`
	CompletedMinutes int        `json:"completedMinutes"`
	Status           TaskStatus `gorm:"default:PENDING" json:"status"`
	AdHoc            bool       `gorm:"default:false" json:"adHoc"`
	CreatedAt        time.Time  `json:"-"`
	UpdatedAt        time.Time  `json:"-"`
}

// DateOnly normalizes t to midnight UTC so plan dates and window dates
// compare by calendar day regardless of the wall-clock component.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
