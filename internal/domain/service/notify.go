package service

import (
	"context"
	"errors"
	"sort"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/Steelnight/dumpdate-bot/internal/domain/entity"
	"github.com/Steelnight/dumpdate-bot/pkg/logger/types"
)

type notifyNotificationStorage interface {
	Create(ctx context.Context, notification *entity.Notification) error
	Exists(ctx context.Context, userID int64, date string) (bool, error)
}

type notifyUserStorage interface {
	Delete(ctx context.Context, id int64) error
}

// DigestMessage is one rendered-to-be reminder.
type DigestMessage struct {
	Tomorrow   bool
	Date       string
	LocationID entity.LocationID
	Categories []string
}

// Sender delivers one reminder to a chat. The telegram scheduler implements
// it on top of telebot and the layout.
type Sender interface {
	SendDigest(userID int64, message DigestMessage) error
}

// DispatchResult records the outcome of one user's reminder.
type DispatchResult struct {
	UserID int64
	Err    error
}

// NotifyService turns digests into sent reminders. Dispatch is idempotent
// per (user, date): a persisted notification marker survives re-runs and
// process restarts.
type NotifyService struct {
	notificationStorage notifyNotificationStorage
	userStorage         notifyUserStorage
	sender              Sender

	logger *types.Logger
}

func NewNotifyService(
	sender Sender,
	logger *types.Logger,
	notificationStorage notifyNotificationStorage,
	userStorage notifyUserStorage,
) *NotifyService {
	return &NotifyService{
		notificationStorage: notificationStorage,
		userStorage:         userStorage,
		sender:              sender,
		logger:              logger,
	}
}

// Dispatch sends one reminder per digest whose user falls into the current
// notify-time bucket. A failure for one user never aborts the batch; it is
// recorded in the returned results and the run continues. Users who blocked
// the bot are removed entirely.
func (s *NotifyService) Dispatch(ctx context.Context, date, bucket string, tomorrow bool, digests map[int64]Digest) []DispatchResult {
	userIDs := make([]int64, 0, len(digests))
	for userID := range digests {
		userIDs = append(userIDs, userID)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	var results []DispatchResult
	for _, userID := range userIDs {
		digest := digests[userID]
		if !sameHourBucket(digest.User.NotifyTime, bucket) {
			continue
		}

		sent, err := s.notificationStorage.Exists(ctx, userID, date)
		if err != nil {
			s.logger.Errorf("failed to check notification marker (user_id=%d, date=%s): %v", userID, date, err)
			results = append(results, DispatchResult{UserID: userID, Err: err})
			continue
		}
		if sent {
			s.logger.Debugf("reminder already sent (user_id=%d, date=%s)", userID, date)
			continue
		}

		if errSend := s.send(ctx, date, tomorrow, digest); errSend != nil {
			results = append(results, DispatchResult{UserID: userID, Err: errSend})
			continue
		}

		marker := &entity.Notification{UserID: userID, Date: date}
		if errMark := s.notificationStorage.Create(ctx, marker); errMark != nil {
			s.logger.Errorf("failed to record notification marker (user_id=%d, date=%s): %v", userID, date, errMark)
		}
		results = append(results, DispatchResult{UserID: userID})
	}

	return results
}

func (s *NotifyService) send(ctx context.Context, date string, tomorrow bool, digest Digest) error {
	message := DigestMessage{
		Tomorrow:   tomorrow,
		Date:       date,
		LocationID: digest.User.LocationID,
	}
	for _, event := range digest.Events {
		message.Categories = append(message.Categories, event.WasteType)
	}

	err := s.sender.SendDigest(digest.User.ID, message)
	if err == nil {
		s.logger.Infof("reminder sent (user_id=%d, date=%s, categories=%d)", digest.User.ID, date, len(message.Categories))
		return nil
	}

	if errors.Is(err, tele.ErrBlockedByUser) || errors.Is(err, tele.ErrUserIsDeactivated) {
		s.logger.Infof("user %d blocked the bot, removing", digest.User.ID)
		if errDelete := s.userStorage.Delete(ctx, digest.User.ID); errDelete != nil {
			s.logger.Errorf("failed to remove blocked user %d: %v", digest.User.ID, errDelete)
		}
		return err
	}

	s.logger.Errorf("failed to send reminder to user %d: %v", digest.User.ID, err)
	return err
}

// sameHourBucket reports whether a user's notify time falls into the tick's
// hour bucket ("18:30" belongs to the "18:00" tick).
func sameHourBucket(notifyTime, bucket string) bool {
	userTime, errUser := time.Parse("15:04", notifyTime)
	bucketTime, errBucket := time.Parse("15:04", bucket)
	if errUser != nil || errBucket != nil {
		return false
	}
	return userTime.Hour() == bucketTime.Hour()
}
