package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Steelnight/dumpdate-bot/internal/domain/entity"
	"github.com/Steelnight/dumpdate-bot/internal/domain/utils/waste"
)

type fakeEventStorage struct {
	events []entity.PickupEvent
}

func (f *fakeEventStorage) EventsOn(_ context.Context, date string) ([]entity.PickupEvent, error) {
	var out []entity.PickupEvent
	for _, event := range f.events {
		if event.Day() == date {
			out = append(out, event)
		}
	}
	return out, nil
}

type fakeUserStorage struct {
	users []entity.User
}

func (f *fakeUserStorage) GetByLocation(_ context.Context, locationID entity.LocationID) ([]entity.User, error) {
	var out []entity.User
	for _, user := range f.users {
		if user.LocationID == locationID {
			out = append(out, user)
		}
	}
	return out, nil
}

type fakeSubscriptionStorage struct {
	users         *fakeUserStorage
	subscriptions []entity.Subscription
}

func (f *fakeSubscriptionStorage) ListByLocation(ctx context.Context, locationID entity.LocationID) ([]entity.Subscription, error) {
	users, _ := f.users.GetByLocation(ctx, locationID)
	atLocation := make(map[int64]bool, len(users))
	for _, user := range users {
		atLocation[user.ID] = true
	}

	var out []entity.Subscription
	for _, subscription := range f.subscriptions {
		if atLocation[subscription.UserID] {
			out = append(out, subscription)
		}
	}
	return out, nil
}

func day(value string) time.Time {
	parsed, err := time.Parse(entity.DateLayout, value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func newDigestService(users []entity.User, subscriptions []entity.Subscription, events []entity.PickupEvent) *DigestService {
	userStorage := &fakeUserStorage{users: users}
	return NewDigestService(
		&fakeEventStorage{events: events},
		userStorage,
		&fakeSubscriptionStorage{users: userStorage, subscriptions: subscriptions},
	)
}

func TestComputeIntersectsSubscriptionsWithEvents(t *testing.T) {
	// user subscribed to {Bio, Rest} at L, events on D are {Bio, Papier}:
	// the digest must contain exactly Bio
	svc := newDigestService(
		[]entity.User{{ID: 1, LocationID: "L", NotifyTime: "18:00"}},
		[]entity.Subscription{
			{UserID: 1, WasteType: waste.Bio},
			{UserID: 1, WasteType: waste.Rest},
		},
		[]entity.PickupEvent{
			{LocationID: "L", Date: day("2024-03-01"), WasteType: waste.Bio},
			{LocationID: "L", Date: day("2024-03-01"), WasteType: waste.Paper},
		},
	)

	digests, err := svc.Compute(context.Background(), "2024-03-01")
	require.NoError(t, err)
	require.Len(t, digests, 1)

	digest := digests[1]
	require.Len(t, digest.Events, 1)
	assert.Equal(t, waste.Bio, digest.Events[0].WasteType)
	assert.Equal(t, "18:00", digest.User.NotifyTime)
}

func TestComputeSkipsUsersWithoutMatches(t *testing.T) {
	svc := newDigestService(
		[]entity.User{
			{ID: 1, LocationID: "L1"},
			{ID: 2, LocationID: "L1"},
			{ID: 3, LocationID: "L2"},
		},
		[]entity.Subscription{
			{UserID: 1, WasteType: waste.Bio},
			{UserID: 2, WasteType: waste.Yellow}, // no Yellow event on the date
			{UserID: 3, WasteType: waste.Bio},    // event is at L1, not L2
		},
		[]entity.PickupEvent{
			{LocationID: "L1", Date: day("2024-03-01"), WasteType: waste.Bio},
		},
	)

	digests, err := svc.Compute(context.Background(), "2024-03-01")
	require.NoError(t, err)
	assert.Len(t, digests, 1)
	assert.Contains(t, digests, int64(1))
}

func TestComputeIgnoresOtherDates(t *testing.T) {
	svc := newDigestService(
		[]entity.User{{ID: 1, LocationID: "L"}},
		[]entity.Subscription{{UserID: 1, WasteType: waste.Bio}},
		[]entity.PickupEvent{
			{LocationID: "L", Date: day("2024-03-02"), WasteType: waste.Bio},
		},
	)

	digests, err := svc.Compute(context.Background(), "2024-03-01")
	require.NoError(t, err)
	assert.Empty(t, digests)
}

func TestComputeIsDeterministicAcrossInsertionOrder(t *testing.T) {
	users := []entity.User{{ID: 1, LocationID: "L"}}
	subscriptions := []entity.Subscription{
		{UserID: 1, WasteType: waste.Rest},
		{UserID: 1, WasteType: waste.Bio},
		{UserID: 1, WasteType: waste.Yellow},
	}
	events := []entity.PickupEvent{
		{LocationID: "L", Date: day("2024-03-01"), WasteType: waste.Rest},
		{LocationID: "L", Date: day("2024-03-01"), WasteType: waste.Yellow},
		{LocationID: "L", Date: day("2024-03-01"), WasteType: waste.Bio},
	}
	reversed := []entity.PickupEvent{events[2], events[1], events[0]}

	first, err := newDigestService(users, subscriptions, events).Compute(context.Background(), "2024-03-01")
	require.NoError(t, err)
	second, err := newDigestService(users, subscriptions, reversed).Compute(context.Background(), "2024-03-01")
	require.NoError(t, err)

	require.Len(t, first[1].Events, 3)
	// ordered by category name regardless of row order
	assert.Equal(t, waste.Bio, first[1].Events[0].WasteType)
	assert.Equal(t, waste.Yellow, first[1].Events[1].WasteType)
	assert.Equal(t, waste.Rest, first[1].Events[2].WasteType)
	assert.Equal(t, first, second)
}
