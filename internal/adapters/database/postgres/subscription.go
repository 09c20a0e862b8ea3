package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Steelnight/dumpdate-bot/internal/domain/common/errorz"
	"github.com/Steelnight/dumpdate-bot/internal/domain/entity"
)

type SubscriptionStorage struct {
	db *gorm.DB
}

func NewSubscriptionStorage(db *gorm.DB) *SubscriptionStorage {
	return &SubscriptionStorage{
		db: db,
	}
}

// Add subscribes the user to a category. Idempotent: re-adding an existing
// pair is a no-op. The existence check and the insert run in one
// transaction, so a concurrent user delete cannot leave an orphaned row.
func (s *SubscriptionStorage) Add(ctx context.Context, userID int64, wasteType string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user entity.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorz.ErrUserNotFound
			}
			return err
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&entity.Subscription{UserID: userID, WasteType: wasteType}).Error
	})
}

// Remove unsubscribes the user from a category. Removing an absent pair is
// a no-op.
func (s *SubscriptionStorage) Remove(ctx context.Context, userID int64, wasteType string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND waste_type = ?", userID, wasteType).
		Delete(&entity.Subscription{}).Error
}

// ListByUser returns the user's subscribed categories.
func (s *SubscriptionStorage) ListByUser(ctx context.Context, userID int64) ([]entity.Subscription, error) {
	var subscriptions []entity.Subscription
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&subscriptions).Error
	return subscriptions, err
}

// ListByLocation returns every (user, category) pair at a location, joined
// through the users.location_id index.
func (s *SubscriptionStorage) ListByLocation(ctx context.Context, locationID entity.LocationID) ([]entity.Subscription, error) {
	var subscriptions []entity.Subscription
	err := s.db.WithContext(ctx).
		Joins("JOIN users ON users.id = subscriptions.user_id").
		Where("users.location_id = ?", locationID).
		Find(&subscriptions).Error
	return subscriptions, err
}
