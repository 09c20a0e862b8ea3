package entity

// Subscription marks that a user wants reminders for one waste category.
type Subscription struct {
	UserID    int64  `gorm:"primaryKey;autoIncrement:false"`
	WasteType string `gorm:"primaryKey"`
}
