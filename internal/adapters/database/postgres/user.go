package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Steelnight/dumpdate-bot/internal/domain/common/errorz"
	"github.com/Steelnight/dumpdate-bot/internal/domain/entity"
)

type UserStorage struct {
	db *gorm.DB
}

func NewUserStorage(db *gorm.DB) *UserStorage {
	return &UserStorage{
		db: db,
	}
}

// Upsert creates the user or overwrites their location and notify time.
func (s *UserStorage) Upsert(ctx context.Context, user *entity.User) (*entity.User, error) {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"location_id", "notify_time"}),
		}).
		Create(user).Error
	return user, err
}

// Get returns a user by chat id, or errorz.ErrUserNotFound.
func (s *UserStorage) Get(ctx context.Context, id int64) (*entity.User, error) {
	var user entity.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrUserNotFound
	}
	return &user, err
}

// GetByLocation returns all users registered at a location. Backed by the
// index on users.location_id: this is the matching engine's hot read path.
func (s *UserStorage) GetByLocation(ctx context.Context, locationID entity.LocationID) ([]entity.User, error) {
	var users []entity.User
	err := s.db.WithContext(ctx).Where("location_id = ?", locationID).Find(&users).Error
	return users, err
}

// UpdateNotifyTime sets the user's notify time.
func (s *UserStorage) UpdateNotifyTime(ctx context.Context, id int64, notifyTime string) error {
	return s.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Update("notify_time", notifyTime).Error
}

// Delete removes the user and all their subscriptions in one transaction.
// Deleting an absent user is a no-op.
func (s *UserStorage) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&entity.Subscription{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.User{}).Error
	})
}

// DistinctLocations lists every location some user is registered at.
func (s *UserStorage) DistinctLocations(ctx context.Context) ([]entity.LocationID, error) {
	var locations []entity.LocationID
	err := s.db.WithContext(ctx).
		Model(&entity.User{}).
		Distinct("location_id").
		Pluck("location_id", &locations).Error
	return locations, err
}

// Count is a function that gets the count of users from the database.
func (s *UserStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.User{}).Count(&count).Error
	return count, err
}
