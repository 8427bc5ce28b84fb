package model

import "time"

// User mirrors an account issued by the external auth layer. The engine only
// ever sees the opaque external identifier it is handed per request.
type User struct {
	ID         uint   `gorm:"primaryKey"`
	ExternalID string `gorm:"uniqueIndex"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
