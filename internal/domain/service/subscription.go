package service

import (
	"context"

	"github.com/Steelnight/dumpdate-bot/internal/domain/common/errorz"
	"github.com/Steelnight/dumpdate-bot/internal/domain/entity"
	"github.com/Steelnight/dumpdate-bot/internal/domain/utils/waste"
)

type SubscriptionStorage interface {
	Add(ctx context.Context, userID int64, wasteType string) error
	Remove(ctx context.Context, userID int64, wasteType string) error
	ListByUser(ctx context.Context, userID int64) ([]entity.Subscription, error)
	ListByLocation(ctx context.Context, locationID entity.LocationID) ([]entity.Subscription, error)
}

type SubscriptionService struct {
	storage SubscriptionStorage
}

func NewSubscriptionService(storage SubscriptionStorage) *SubscriptionService {
	return &SubscriptionService{
		storage: storage,
	}
}

// Add subscribes the user to a supported category. Unsupported categories
// are rejected so arbitrary callback payloads cannot grow the schema's
// category vocabulary.
func (s *SubscriptionService) Add(ctx context.Context, userID int64, category string) error {
	if !waste.IsSupported(category) {
		return errorz.ErrMalformedCallback
	}
	return s.storage.Add(ctx, userID, category)
}

// Remove unsubscribes the user from a category. Idempotent.
func (s *SubscriptionService) Remove(ctx context.Context, userID int64, category string) error {
	if !waste.IsSupported(category) {
		return errorz.ErrMalformedCallback
	}
	return s.storage.Remove(ctx, userID, category)
}

// Categories returns the set of categories the user subscribed to.
func (s *SubscriptionService) Categories(ctx context.Context, userID int64) (map[string]bool, error) {
	subscriptions, err := s.storage.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	categories := make(map[string]bool, len(subscriptions))
	for _, subscription := range subscriptions {
		categories[subscription.WasteType] = true
	}
	return categories, nil
}
