package entity

import "time"

// DateLayout is the calendar-date format used everywhere events and
// notification markers are keyed by day.
const DateLayout = "2006-01-02"

// PickupEvent is a fact published by the municipal feed: this category is
// collected at this location on this date. Rows are immutable once ingested.
type PickupEvent struct {
	ID         uint       `gorm:"primaryKey"`
	LocationID LocationID `gorm:"not null;uniqueIndex:idx_pickup_events_triple"`
	Date       time.Time  `gorm:"type:date;not null;index;uniqueIndex:idx_pickup_events_triple"`
	WasteType  string     `gorm:"not null;uniqueIndex:idx_pickup_events_triple"`
}

// Day returns the event date in DateLayout form.
func (e PickupEvent) Day() string {
	return e.Date.Format(DateLayout)
}
