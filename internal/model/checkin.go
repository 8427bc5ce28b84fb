package model

import "time"

// HourlyCheckin batches the minutes a user reported for one time window.
// The composite unique index enforces one checkin per (user, window) even
// under concurrent submits.
type HourlyCheckin struct {
	ID             uint            `gorm:"primaryKey" json:"checkinId"`
	UserID         uint            `gorm:"index;index:idx_user_window,unique" json:"-"`
	WindowStart    time.Time       `gorm:"index:idx_user_window,unique" json:"windowStart"`
	WindowEnd      time.Time       `gorm:"index:idx_user_window,unique" json:"windowEnd"`
	OverallComment string          `json:"overallComment"`
	Records        []CheckinRecord `gorm:"foreignKey:CheckinID" json:"records"`
	CreatedAt      time.Time       `json:"-"`
	UpdatedAt      time.Time       `json:"-"`
}

// CheckinRecord attributes minutes from one checkin to one task instance.
// TaskInstanceID is always set after submission: ad-hoc records get a newly
// created instance and are flagged CreatedAsAdHoc.
type CheckinRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CheckinID      uint      `gorm:"index" json:"-"`
	UserID         uint      `gorm:"index" json:"-"`
	TaskInstanceID *uint     `json:"taskInstanceId"`
	AddedMinutes   int       `json:"addedMinutes"`
	Comment        string    `json:"comment"`
	ReferenceLink  string    `json:"referenceLink"`
	CreatedAsAdHoc bool      `gorm:"default:false" json:"createdAsAdHoc"`
	CreatedAt      time.Time `json:"-"`
}
