package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/Steelnight/dumpdate-bot/internal/domain/entity"
	"github.com/Steelnight/dumpdate-bot/internal/domain/utils/waste"
	"github.com/Steelnight/dumpdate-bot/pkg/logger/types"
)

type fakeSender struct {
	sent    map[int64]int
	failFor map[int64]error
}

func newFakeSender() *fakeSender {
	return &fakeSender{sent: make(map[int64]int), failFor: make(map[int64]error)}
}

func (f *fakeSender) SendDigest(userID int64, _ DigestMessage) error {
	if err, ok := f.failFor[userID]; ok {
		return err
	}
	f.sent[userID]++
	return nil
}

type fakeNotificationStorage struct {
	markers map[string]bool
}

func newFakeNotificationStorage() *fakeNotificationStorage {
	return &fakeNotificationStorage{markers: make(map[string]bool)}
}

func (f *fakeNotificationStorage) Create(_ context.Context, notification *entity.Notification) error {
	f.markers[fmt.Sprintf("%d:%s", notification.UserID, notification.Date)] = true
	return nil
}

func (f *fakeNotificationStorage) Exists(_ context.Context, userID int64, date string) (bool, error) {
	return f.markers[fmt.Sprintf("%d:%s", userID, date)], nil
}

type fakeUserDeleter struct {
	deleted []int64
}

func (f *fakeUserDeleter) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func testLogger() *types.Logger {
	return &types.Logger{SugaredLogger: zap.NewNop().Sugar(), Name: "test"}
}

func testDigests() map[int64]Digest {
	return map[int64]Digest{
		1: {
			User: entity.User{ID: 1, LocationID: "L", NotifyTime: "18:00"},
			Events: []entity.PickupEvent{
				{LocationID: "L", Date: day("2024-03-01"), WasteType: waste.Bio},
			},
		},
		2: {
			User: entity.User{ID: 2, LocationID: "L", NotifyTime: "18:30"},
			Events: []entity.PickupEvent{
				{LocationID: "L", Date: day("2024-03-01"), WasteType: waste.Rest},
			},
		},
	}
}

func TestDispatchSendsOncePerUserAndDate(t *testing.T) {
	sender := newFakeSender()
	markers := newFakeNotificationStorage()
	svc := NewNotifyService(sender, testLogger(), markers, &fakeUserDeleter{})

	digests := testDigests()
	results := svc.Dispatch(context.Background(), "2024-03-01", "18:00", false, digests)
	require.Len(t, results, 2)
	for _, result := range results {
		assert.NoError(t, result.Err)
	}

	// re-running the same tick must not duplicate sends
	results = svc.Dispatch(context.Background(), "2024-03-01", "18:00", false, digests)
	assert.Empty(t, results)
	assert.Equal(t, 1, sender.sent[1])
	assert.Equal(t, 1, sender.sent[2])
}

func TestDispatchHonorsNotifyTimeBucket(t *testing.T) {
	sender := newFakeSender()
	svc := NewNotifyService(sender, testLogger(), newFakeNotificationStorage(), &fakeUserDeleter{})

	digests := map[int64]Digest{
		1: {User: entity.User{ID: 1, NotifyTime: "06:00"}, Events: testDigests()[1].Events},
		2: {User: entity.User{ID: 2, NotifyTime: "18:00"}, Events: testDigests()[2].Events},
	}

	results := svc.Dispatch(context.Background(), "2024-03-01", "18:00", false, digests)
	require.Len(t, results, 1)
	assert.Equal(t, int64(2), results[0].UserID)
	assert.Zero(t, sender.sent[1])
}

func TestDispatchIsolatesFailures(t *testing.T) {
	sender := newFakeSender()
	sendErr := errors.New("telegram unavailable")
	sender.failFor[1] = sendErr

	markers := newFakeNotificationStorage()
	svc := NewNotifyService(sender, testLogger(), markers, &fakeUserDeleter{})

	results := svc.Dispatch(context.Background(), "2024-03-01", "18:00", false, testDigests())
	require.Len(t, results, 2)
	assert.ErrorIs(t, results[0].Err, sendErr)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, 1, sender.sent[2])

	// the failed user keeps no marker, so the next tick retries them
	sent, err := markers.Exists(context.Background(), 1, "2024-03-01")
	require.NoError(t, err)
	assert.False(t, sent)
}

func TestDispatchRemovesBlockedUsers(t *testing.T) {
	sender := newFakeSender()
	sender.failFor[1] = tele.ErrBlockedByUser

	deleter := &fakeUserDeleter{}
	svc := NewNotifyService(sender, testLogger(), newFakeNotificationStorage(), deleter)

	results := svc.Dispatch(context.Background(), "2024-03-01", "18:00", false, testDigests())
	require.Len(t, results, 2)
	assert.Equal(t, []int64{1}, deleter.deleted)
}
