package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Steelnight/dumpdate-bot/internal/domain/entity"
)

type PickupEventStorage struct {
	db *gorm.DB
}

func NewPickupEventStorage(db *gorm.DB) *PickupEventStorage {
	return &PickupEventStorage{
		db: db,
	}
}

// EventsOn returns all pickup events on a calendar date, across locations.
func (s *PickupEventStorage) EventsOn(ctx context.Context, date string) ([]entity.PickupEvent, error) {
	var events []entity.PickupEvent
	err := s.db.WithContext(ctx).Where("date = ?", date).Find(&events).Error
	return events, err
}

// ReplaceUpcoming swaps the location's events from today onward for a fresh
// feed snapshot. Past rows stay untouched; the delete and the inserts run in
// one transaction so readers never observe a half-refreshed location.
func (s *PickupEventStorage) ReplaceUpcoming(ctx context.Context, locationID entity.LocationID, from time.Time, events []entity.PickupEvent) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("location_id = ? AND date >= ?", locationID, from.Format(entity.DateLayout)).
			Delete(&entity.PickupEvent{}).Error
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			CreateInBatches(events, 250).Error
	})
}
