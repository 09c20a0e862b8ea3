package service

import (
	"context"

	"github.com/Steelnight/dumpdate-bot/internal/domain/entity"
	"github.com/Steelnight/dumpdate-bot/internal/domain/utils/validator"
	"github.com/Steelnight/dumpdate-bot/internal/domain/utils/waste"
)

type UserStorage interface {
	Upsert(ctx context.Context, user *entity.User) (*entity.User, error)
	Get(ctx context.Context, id int64) (*entity.User, error)
	UpdateNotifyTime(ctx context.Context, id int64, notifyTime string) error
	Delete(ctx context.Context, id int64) error
	DistinctLocations(ctx context.Context) ([]entity.LocationID, error)
	Count(ctx context.Context) (int64, error)
}

type userSubscriptionStorage interface {
	Add(ctx context.Context, userID int64, wasteType string) error
}

type UserService struct {
	userStorage         UserStorage
	subscriptionStorage userSubscriptionStorage
}

func NewUserService(userStorage UserStorage, subscriptionStorage userSubscriptionStorage) *UserService {
	return &UserService{
		userStorage:         userStorage,
		subscriptionStorage: subscriptionStorage,
	}
}

// Register validates the raw location id, creates the user (or moves an
// existing one to the new location) and seeds the default category
// subscriptions. Returns errorz.ErrInvalidLocationID on bad input.
func (s *UserService) Register(ctx context.Context, userID int64, rawLocation string) (*entity.User, error) {
	locationID, err := validator.LocationID(rawLocation)
	if err != nil {
		return nil, err
	}

	user, err := s.userStorage.Upsert(ctx, &entity.User{
		ID:         userID,
		LocationID: locationID,
		NotifyTime: entity.DefaultNotifyTime,
	})
	if err != nil {
		return nil, err
	}

	for _, category := range waste.DefaultSubscriptions() {
		if err = s.subscriptionStorage.Add(ctx, userID, category); err != nil {
			return nil, err
		}
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, userID int64) (*entity.User, error) {
	return s.userStorage.Get(ctx, userID)
}

// UpdateLocation validates and stores a new location id for an existing user.
func (s *UserService) UpdateLocation(ctx context.Context, userID int64, rawLocation string) (*entity.User, error) {
	locationID, err := validator.LocationID(rawLocation)
	if err != nil {
		return nil, err
	}

	user, err := s.userStorage.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.LocationID = locationID
	return s.userStorage.Upsert(ctx, user)
}

// UpdateNotifyTime validates and stores a new "HH:MM" notify time.
func (s *UserService) UpdateNotifyTime(ctx context.Context, userID int64, rawTime string) (string, error) {
	notifyTime, err := validator.NotifyTime(rawTime)
	if err != nil {
		return "", err
	}
	return notifyTime, s.userStorage.UpdateNotifyTime(ctx, userID, notifyTime)
}

// Delete removes the user and, through the store's cascade, all their
// subscriptions. Deleting an unknown user is a no-op.
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	return s.userStorage.Delete(ctx, userID)
}

func (s *UserService) DistinctLocations(ctx context.Context) ([]entity.LocationID, error) {
	return s.userStorage.DistinctLocations(ctx)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.userStorage.Count(ctx)
}
