package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"

	"github.com/Steelnight/dumpdate-bot/cmd/bot"
	"github.com/Steelnight/dumpdate-bot/internal/adapters/database/postgres"
	"github.com/Steelnight/dumpdate-bot/internal/adapters/database/redis/runlock"
	"github.com/Steelnight/dumpdate-bot/internal/domain/entity"
	"github.com/Steelnight/dumpdate-bot/internal/domain/service"
	"github.com/Steelnight/dumpdate-bot/internal/domain/utils/location"
	"github.com/Steelnight/dumpdate-bot/pkg/logger"
	"github.com/Steelnight/dumpdate-bot/pkg/logger/types"
)

// runLockTTL keeps a finished tick's lock alive well past the hour so a
// delayed duplicate trigger cannot start a second run for the same bucket.
const runLockTTL = 2 * time.Hour

// telegramSender delivers reminders through the bot using the shared locale
// templates.
type telegramSender struct {
	bot    *tele.Bot
	layout *layout.Layout
}

func (s *telegramSender) SendDigest(userID int64, message service.DigestMessage) error {
	_, err := s.bot.Send(
		tele.ChatID(userID),
		s.layout.TextLocale("en", "pickup_digest", message),
	)
	return err
}

// NotifyScheduler owns the periodic work: the hourly reminder tick and the
// calendar feed refresh.
type NotifyScheduler struct {
	digestService *service.DigestService
	notifyService *service.NotifyService
	feedService   *service.FeedService
	userService   *service.UserService
	runLock       *runlock.Storage

	cron   *cron.Cron
	logger *types.Logger
}

func New(b *bot.Bot) (*NotifyScheduler, error) {
	schedulerLogger, err := logger.Named("scheduler")
	if err != nil {
		return nil, err
	}

	userStorage := postgres.NewUserStorage(b.DB)
	subscriptionStorage := postgres.NewSubscriptionStorage(b.DB)
	eventStorage := postgres.NewPickupEventStorage(b.DB)
	notificationStorage := postgres.NewNotificationStorage(b.DB)
	userService := service.NewUserService(userStorage, subscriptionStorage)

	return &NotifyScheduler{
		digestService: service.NewDigestService(eventStorage, userStorage, subscriptionStorage),
		notifyService: service.NewNotifyService(
			&telegramSender{bot: b.Bot, layout: b.Layout},
			schedulerLogger,
			notificationStorage,
			userService,
		),
		feedService: service.NewFeedService(
			viper.GetString("feed.url"),
			schedulerLogger,
			eventStorage,
			userService,
		),
		userService: userService,
		runLock:     b.Redis.RunLock,
		cron:        cron.New(cron.WithLocation(location.Location())),
		logger:      schedulerLogger,
	}, nil
}

func (s *NotifyScheduler) Start() error {
	if _, err := s.cron.AddFunc("0 * * * *", s.tick); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 4 * * 6", s.refreshFeed); err != nil {
		return err
	}
	s.cron.Start()

	if count, err := s.userService.Count(context.Background()); err == nil {
		s.logger.Infof("notify scheduler started, %d users registered", count)
	} else {
		s.logger.Errorf("error while counting users: %v", err)
	}

	// First refresh runs immediately so a fresh deployment has events
	// before the next weekly slot.
	go s.refreshFeed()
	return nil
}

func (s *NotifyScheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("notify scheduler stopped")
}

// tick runs once per hour. The redis lock keyed by (date, bucket) makes sure
// restarts and overlapping triggers never produce a second dispatch for the
// same hour.
func (s *NotifyScheduler) tick() {
	ctx := context.Background()
	runID := uuid.New().String()

	now := time.Now().In(location.Location())
	bucket := fmt.Sprintf("%02d:00", now.Hour())
	offsetDays := viper.GetInt("notify.offset-days")
	date := now.AddDate(0, 0, offsetDays).Format(entity.DateLayout)

	acquired, err := s.runLock.Acquire(ctx, date, bucket, runLockTTL)
	if err != nil {
		s.logger.Errorf("(run: %s) error while acquiring run lock: %v", runID, err)
		return
	}
	if !acquired {
		s.logger.Infof("(run: %s) tick %s %s already running, skipping", runID, date, bucket)
		return
	}

	digests, err := s.digestService.Compute(ctx, date)
	if err != nil {
		s.logger.Errorf("(run: %s) error while computing digests: %v", runID, err)
		// The lock is released on compute failure so the next trigger
		// can retry the bucket.
		if releaseErr := s.runLock.Release(ctx, date, bucket); releaseErr != nil {
			s.logger.Errorf("(run: %s) error while releasing run lock: %v", runID, releaseErr)
		}
		return
	}
	if len(digests) == 0 {
		s.logger.Infof("(run: %s) no pickups on %s", runID, date)
		return
	}

	results := s.notifyService.Dispatch(ctx, date, bucket, offsetDays > 0, digests)

	var sent, failed int
	for _, result := range results {
		if result.Err != nil {
			failed++
			continue
		}
		sent++
	}
	s.logger.Infof("(run: %s) tick %s %s done: %d sent, %d failed", runID, date, bucket, sent, failed)
}

func (s *NotifyScheduler) refreshFeed() {
	s.logger.Info("refreshing pickup calendars")
	if err := s.feedService.RefreshAll(context.Background()); err != nil {
		s.logger.Errorf("error while refreshing pickup calendars: %v", err)
	}
}
