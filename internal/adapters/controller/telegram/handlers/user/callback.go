package user

import (
	"context"
	"errors"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/Steelnight/dumpdate-bot/internal/domain/callback"
	"github.com/Steelnight/dumpdate-bot/internal/domain/common/errorz"
	"github.com/Steelnight/dumpdate-bot/internal/domain/entity"
	"github.com/Steelnight/dumpdate-bot/internal/domain/utils/waste"
)

// OnCallback is the single entry point for every inline button press. The
// payload is parsed before anything else happens; malformed or unknown data
// gets a toast and never reaches the action handlers.
func (h Handler) OnCallback(c tele.Context) error {
	if c.Callback() == nil {
		return nil
	}
	raw := strings.TrimPrefix(c.Callback().Data, "\f")

	action, err := callback.Parse(raw)
	if err != nil {
		h.logger.Warnf("(user: %d) unusable callback payload %q: %v", c.Sender().ID, raw, err)
		return c.Respond(&tele.CallbackResponse{
			Text: h.layout.Text(c, "callback_error"),
		})
	}

	switch action.Kind {
	case callback.KindBack:
		return h.editSettings(c)
	case callback.KindEdit:
		if action.Arg(0) == callback.FieldLocation {
			h.logger.Infof("(user: %d) edit location", c.Sender().ID)
			return h.collectLocation(c, false)
		}
		h.logger.Infof("(user: %d) edit notify time", c.Sender().ID)
		return h.collectNotifyTime(c)
	case callback.KindAddCategory:
		return h.toggleCategory(c, action.Arg(0), true)
	case callback.KindRemoveCategory:
		return h.toggleCategory(c, action.Arg(0), false)
	case callback.KindDeleteLocation:
		if action.Arg(0) == callback.ConfirmToken {
			return h.deleteLocation(c)
		}
		return c.Edit(
			h.layout.Text(c, "delete_confirm_text"),
			h.deleteConfirmMarkup(c),
		)
	}
	return nil
}

func (h Handler) toggleCategory(c tele.Context, category string, subscribe bool) error {
	var err error
	if subscribe {
		err = h.subscriptionService.Add(context.Background(), c.Sender().ID, category)
	} else {
		err = h.subscriptionService.Remove(context.Background(), c.Sender().ID, category)
	}
	switch {
	case errors.Is(err, errorz.ErrUserNotFound):
		return c.Respond(&tele.CallbackResponse{
			Text: h.layout.Text(c, "start_required"),
		})
	case errors.Is(err, errorz.ErrMalformedCallback):
		h.logger.Warnf("(user: %d) unsupported category in callback: %s", c.Sender().ID, category)
		return c.Respond(&tele.CallbackResponse{
			Text: h.layout.Text(c, "callback_error"),
		})
	case err != nil:
		h.logger.Errorf("(user: %d) error while toggling category %s: %v", c.Sender().ID, category, err)
		return c.Respond(&tele.CallbackResponse{
			Text: h.layout.Text(c, "technical_issues", err.Error()),
		})
	}

	h.logger.Infof("(user: %d) category %s subscribed=%t", c.Sender().ID, category, subscribe)
	return h.editSettings(c)
}

func (h Handler) deleteLocation(c tele.Context) error {
	if err := h.userService.Delete(context.Background(), c.Sender().ID); err != nil {
		h.logger.Errorf("(user: %d) error while deleting user: %v", c.Sender().ID, err)
		return c.Respond(&tele.CallbackResponse{
			Text: h.layout.Text(c, "technical_issues", err.Error()),
		})
	}
	h.logger.Infof("(user: %d) location deleted", c.Sender().ID)
	return c.Edit(h.layout.Text(c, "stopped_text"))
}

func (h Handler) editSettings(c tele.Context) error {
	user, err := h.userService.Get(context.Background(), c.Sender().ID)
	if err != nil {
		if errors.Is(err, errorz.ErrUserNotFound) {
			return c.Edit(h.layout.Text(c, "start_required"))
		}
		h.logger.Errorf("(user: %d) error while getting user: %v", c.Sender().ID, err)
		return c.Edit(
			h.layout.Text(c, "technical_issues", err.Error()),
		)
	}
	return h.sendSettings(c, user, true)
}

// sendSettings renders the settings menu. With edit set the message carrying
// the pressed button is edited in place instead of sending a new one.
func (h Handler) sendSettings(c tele.Context, user *entity.User, edit bool) error {
	categories, err := h.subscriptionService.Categories(context.Background(), user.ID)
	if err != nil {
		h.logger.Errorf("(user: %d) error while getting categories: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues", err.Error()),
		)
	}

	text := h.layout.Text(c, "settings_text", user)
	markup := h.settingsMarkup(c, categories)
	if edit {
		return c.Edit(text, markup)
	}
	return c.Send(text, markup)
}

// settingsMarkup builds the inline keyboard with one toggle row per waste
// category followed by the edit and delete rows. Button payloads are produced
// by callback.Data so they always parse back.
func (h Handler) settingsMarkup(c tele.Context, categories map[string]bool) *tele.ReplyMarkup {
	var rows [][]tele.InlineButton
	for _, category := range waste.SupportedTypes() {
		if categories[category] {
			rows = append(rows, []tele.InlineButton{{
				Text: h.layout.Text(c, "category_on_button", category),
				Data: callback.Data(callback.KindRemoveCategory, category),
			}})
		} else {
			rows = append(rows, []tele.InlineButton{{
				Text: h.layout.Text(c, "category_off_button", category),
				Data: callback.Data(callback.KindAddCategory, category),
			}})
		}
	}
	rows = append(rows, []tele.InlineButton{
		{
			Text: h.layout.Text(c, "edit_location_button"),
			Data: callback.Data(callback.KindEdit, callback.FieldLocation),
		},
		{
			Text: h.layout.Text(c, "edit_time_button"),
			Data: callback.Data(callback.KindEdit, callback.FieldTime),
		},
	})
	rows = append(rows, []tele.InlineButton{{
		Text: h.layout.Text(c, "delete_location_button"),
		Data: callback.Data(callback.KindDeleteLocation),
	}})

	return &tele.ReplyMarkup{InlineKeyboard: rows}
}

func (h Handler) deleteConfirmMarkup(c tele.Context) *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{
		{
			{
				Text: h.layout.Text(c, "delete_confirm_button"),
				Data: callback.Data(callback.KindDeleteLocation, callback.ConfirmToken),
			},
			{
				Text: h.layout.Text(c, "back_button"),
				Data: callback.Data(callback.KindBack),
			},
		},
	}}
}
