package entity

import "time"

// DefaultNotifyTime is used when a user registers without picking a time.
const DefaultNotifyTime = "18:00"

// User is one telegram chat subscribed to pickup reminders.
// The primary key is the telegram chat id, assigned externally.
type User struct {
	ID         int64      `gorm:"primaryKey;autoIncrement:false"`
	LocationID LocationID `gorm:"not null;index"`
	NotifyTime string     `gorm:"not null;default:'18:00'"`
	CreatedAt  time.Time

	// The FK cascade is the database-level backstop: even a subscription
	// insert racing a user delete cannot leave an orphaned row.
	Subscriptions []Subscription `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
