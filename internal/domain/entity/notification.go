package entity

import "time"

// Notification records that a reminder was sent to a user for a target date.
// The unique (user_id, date) pair makes dispatch idempotent across re-runs
// and process restarts.
type Notification struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    int64  `gorm:"not null;uniqueIndex:idx_notifications_user_date"`
	Date      string `gorm:"not null;uniqueIndex:idx_notifications_user_date"`
	CreatedAt time.Time
}
