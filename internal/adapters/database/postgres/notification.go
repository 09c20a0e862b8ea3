package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Steelnight/dumpdate-bot/internal/domain/entity"
)

type NotificationStorage struct {
	db *gorm.DB
}

func NewNotificationStorage(db *gorm.DB) *NotificationStorage {
	return &NotificationStorage{
		db: db,
	}
}

// Create records that a reminder went out to a user for a date. Safe to call
// twice: the (user_id, date) unique index plus DO NOTHING absorbs the
// duplicate.
func (s *NotificationStorage) Create(ctx context.Context, notification *entity.Notification) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(notification).Error
}

// Exists reports whether a reminder was already sent to the user for a date.
func (s *NotificationStorage) Exists(ctx context.Context, userID int64, date string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entity.Notification{}).
		Where("user_id = ? AND date = ?", userID, date).
		Count(&count).Error
	return count > 0, err
}
