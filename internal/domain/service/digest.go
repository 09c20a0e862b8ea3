package service

import (
	"context"
	"sort"

	"github.com/Steelnight/dumpdate-bot/internal/domain/entity"
)

type digestEventStorage interface {
	EventsOn(ctx context.Context, date string) ([]entity.PickupEvent, error)
}

type digestUserStorage interface {
	GetByLocation(ctx context.Context, locationID entity.LocationID) ([]entity.User, error)
}

type digestSubscriptionStorage interface {
	ListByLocation(ctx context.Context, locationID entity.LocationID) ([]entity.Subscription, error)
}

// Digest is everything one user should be reminded about on one date.
type Digest struct {
	User   entity.User
	Events []entity.PickupEvent
}

// DigestService is the matching engine: it joins the day's pickup events
// against subscribers, location by location.
type DigestService struct {
	eventStorage        digestEventStorage
	userStorage         digestUserStorage
	subscriptionStorage digestSubscriptionStorage
}

func NewDigestService(
	eventStorage digestEventStorage,
	userStorage digestUserStorage,
	subscriptionStorage digestSubscriptionStorage,
) *DigestService {
	return &DigestService{
		eventStorage:        eventStorage,
		userStorage:         userStorage,
		subscriptionStorage: subscriptionStorage,
	}
}

// Compute returns a digest per user who has at least one subscribed
// category collected at their location on the target date. Users with no
// matching events get no entry. Events within a digest are ordered by
// category name, so the result is deterministic regardless of row
// insertion order.
//
// The join is batched by location: cost is proportional to events times
// subscribers-per-location, not all-users times all-events.
func (s *DigestService) Compute(ctx context.Context, date string) (map[int64]Digest, error) {
	events, err := s.eventStorage.EventsOn(ctx, date)
	if err != nil {
		return nil, err
	}

	eventsByLocation := make(map[entity.LocationID][]entity.PickupEvent)
	for _, event := range events {
		eventsByLocation[event.LocationID] = append(eventsByLocation[event.LocationID], event)
	}

	digests := make(map[int64]Digest)
	for locationID, locationEvents := range eventsByLocation {
		users, errUsers := s.userStorage.GetByLocation(ctx, locationID)
		if errUsers != nil {
			return nil, errUsers
		}
		if len(users) == 0 {
			continue
		}

		subscriptions, errSubs := s.subscriptionStorage.ListByLocation(ctx, locationID)
		if errSubs != nil {
			return nil, errSubs
		}

		subscribed := make(map[int64]map[string]bool)
		for _, subscription := range subscriptions {
			if subscribed[subscription.UserID] == nil {
				subscribed[subscription.UserID] = make(map[string]bool)
			}
			subscribed[subscription.UserID][subscription.WasteType] = true
		}

		for _, user := range users {
			categories := subscribed[user.ID]
			if len(categories) == 0 {
				continue
			}

			var matched []entity.PickupEvent
			for _, event := range locationEvents {
				if categories[event.WasteType] {
					matched = append(matched, event)
				}
			}
			if len(matched) == 0 {
				continue
			}

			sort.Slice(matched, func(i, j int) bool {
				return matched[i].WasteType < matched[j].WasteType
			})
			digests[user.ID] = Digest{User: user, Events: matched}
		}
	}

	return digests, nil
}
