package model

import "time"

// HolidayOverride pins a single date to holiday or workday for one user.
// Dates without an override fall back to the weekend rule.
type HolidayOverride struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_user_holiday_date,unique" json:"-"`
	Date      time.Time `gorm:"index:idx_user_holiday_date,unique" json:"date"`
	IsHoliday bool      `json:"isHoliday"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// DayClassification is the resolved holiday status of one date.
type DayClassification struct {
	Date       time.Time `json:"date"`
	IsHoliday  bool      `json:"isHoliday"`
	Customized bool      `json:"customized"`
	Name       string    `json:"name,omitempty"`
}

// IsWeekend implements the default rule: Saturday and Sunday are holidays.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
