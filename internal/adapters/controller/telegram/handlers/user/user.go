package user

import (
	"context"
	"errors"

	"github.com/nlypage/intele"
	"github.com/nlypage/intele/collector"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"

	"github.com/Steelnight/dumpdate-bot/cmd/bot"
	"github.com/Steelnight/dumpdate-bot/internal/adapters/database/postgres"
	"github.com/Steelnight/dumpdate-bot/internal/domain/common/errorz"
	"github.com/Steelnight/dumpdate-bot/internal/domain/entity"
	"github.com/Steelnight/dumpdate-bot/internal/domain/service"
	"github.com/Steelnight/dumpdate-bot/pkg/logger/types"
)

type userService interface {
	Register(ctx context.Context, userID int64, rawLocation string) (*entity.User, error)
	Get(ctx context.Context, userID int64) (*entity.User, error)
	UpdateLocation(ctx context.Context, userID int64, rawLocation string) (*entity.User, error)
	UpdateNotifyTime(ctx context.Context, userID int64, rawTime string) (string, error)
	Delete(ctx context.Context, userID int64) error
}

type subscriptionService interface {
	Add(ctx context.Context, userID int64, category string) error
	Remove(ctx context.Context, userID int64, category string) error
	Categories(ctx context.Context, userID int64) (map[string]bool, error)
}

type Handler struct {
	layout              *layout.Layout
	logger              *types.Logger
	input               *intele.InputManager
	userService         userService
	subscriptionService subscriptionService
}

func New(b *bot.Bot) *Handler {
	userStorage := postgres.NewUserStorage(b.DB)
	subscriptionStorage := postgres.NewSubscriptionStorage(b.DB)

	return &Handler{
		layout:              b.Layout,
		logger:              b.Logger,
		input:               b.Input,
		userService:         service.NewUserService(userStorage, subscriptionStorage),
		subscriptionService: service.NewSubscriptionService(subscriptionStorage),
	}
}

func (h Handler) Start(c tele.Context) error {
	h.logger.Infof("(user: %d) start", c.Sender().ID)

	user, err := h.userService.Get(context.Background(), c.Sender().ID)
	if err == nil {
		return h.sendSettings(c, user, false)
	}
	if !errors.Is(err, errorz.ErrUserNotFound) {
		h.logger.Errorf("(user: %d) error while getting user: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues", err.Error()),
		)
	}

	_ = c.Send(h.layout.Text(c, "start_text"))
	return h.collectLocation(c, true)
}

func (h Handler) Settings(c tele.Context) error {
	h.logger.Infof("(user: %d) settings", c.Sender().ID)

	user, err := h.userService.Get(context.Background(), c.Sender().ID)
	if err != nil {
		if errors.Is(err, errorz.ErrUserNotFound) {
			return c.Send(h.layout.Text(c, "start_required"))
		}
		h.logger.Errorf("(user: %d) error while getting user: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues", err.Error()),
		)
	}

	return h.sendSettings(c, user, false)
}

func (h Handler) Stop(c tele.Context) error {
	h.logger.Infof("(user: %d) stop", c.Sender().ID)

	if err := h.userService.Delete(context.Background(), c.Sender().ID); err != nil {
		h.logger.Errorf("(user: %d) error while deleting user: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues", err.Error()),
		)
	}

	return c.Send(h.layout.Text(c, "stopped_text"))
}

// collectLocation runs the location input loop. With register set, a new user
// is created with the default subscriptions; otherwise only the stored
// location changes.
func (h Handler) collectLocation(c tele.Context, register bool) error {
	inputCollector := collector.New()
	inputCollector.Collect(c.Message())
	_ = inputCollector.Send(c,
		h.layout.Text(c, "location_request"),
	)

	var (
		user *entity.User
		done bool
	)
	for {
		message, canceled, err := h.input.Get(context.Background(), c.Sender().ID, 0)
		if message != nil {
			inputCollector.Collect(message)
		}
		switch {
		case canceled:
			_ = inputCollector.Clear(c, collector.ClearOptions{IgnoreErrors: true, ExcludeLast: true})
			return nil
		case err != nil:
			h.logger.Errorf("(user: %d) error while input location: %v", c.Sender().ID, err)
			_ = inputCollector.Send(c,
				h.layout.Text(c, "input_error", h.layout.Text(c, "location_request")),
			)
		default:
			if register {
				user, err = h.userService.Register(context.Background(), c.Sender().ID, message.Text)
			} else {
				user, err = h.userService.UpdateLocation(context.Background(), c.Sender().ID, message.Text)
			}
			switch {
			case errors.Is(err, errorz.ErrInvalidLocationID):
				_ = inputCollector.Send(c,
					h.layout.Text(c, "invalid_location"),
				)
			case err != nil:
				h.logger.Errorf("(user: %d) error while saving location: %v", c.Sender().ID, err)
				_ = inputCollector.Clear(c, collector.ClearOptions{IgnoreErrors: true})
				return c.Send(
					h.layout.Text(c, "technical_issues", err.Error()),
				)
			default:
				_ = inputCollector.Clear(c, collector.ClearOptions{IgnoreErrors: true})
				done = true
			}
		}
		if done {
			break
		}
	}

	h.logger.Infof("(user: %d) location saved: %s", c.Sender().ID, user.LocationID)
	_ = c.Send(h.layout.Text(c, "location_saved", user.LocationID))
	return h.sendSettings(c, user, false)
}

// collectNotifyTime runs the reminder time input loop.
func (h Handler) collectNotifyTime(c tele.Context) error {
	inputCollector := collector.New()
	inputCollector.Collect(c.Message())
	_ = inputCollector.Send(c,
		h.layout.Text(c, "notify_time_request"),
	)

	var (
		notifyTime string
		done       bool
	)
	for {
		message, canceled, err := h.input.Get(context.Background(), c.Sender().ID, 0)
		if message != nil {
			inputCollector.Collect(message)
		}
		switch {
		case canceled:
			_ = inputCollector.Clear(c, collector.ClearOptions{IgnoreErrors: true, ExcludeLast: true})
			return nil
		case err != nil:
			h.logger.Errorf("(user: %d) error while input notify time: %v", c.Sender().ID, err)
			_ = inputCollector.Send(c,
				h.layout.Text(c, "input_error", h.layout.Text(c, "notify_time_request")),
			)
		default:
			notifyTime, err = h.userService.UpdateNotifyTime(context.Background(), c.Sender().ID, message.Text)
			switch {
			case errors.Is(err, errorz.ErrInvalidNotifyTime):
				_ = inputCollector.Send(c,
					h.layout.Text(c, "invalid_notify_time"),
				)
			case err != nil:
				h.logger.Errorf("(user: %d) error while saving notify time: %v", c.Sender().ID, err)
				_ = inputCollector.Clear(c, collector.ClearOptions{IgnoreErrors: true})
				return c.Send(
					h.layout.Text(c, "technical_issues", err.Error()),
				)
			default:
				_ = inputCollector.Clear(c, collector.ClearOptions{IgnoreErrors: true})
				done = true
			}
		}
		if done {
			break
		}
	}

	h.logger.Infof("(user: %d) notify time saved: %s", c.Sender().ID, notifyTime)
	_ = c.Send(h.layout.Text(c, "notify_time_saved", notifyTime))

	user, err := h.userService.Get(context.Background(), c.Sender().ID)
	if err != nil {
		h.logger.Errorf("(user: %d) error while getting user: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues", err.Error()),
		)
	}
	return h.sendSettings(c, user, false)
}
