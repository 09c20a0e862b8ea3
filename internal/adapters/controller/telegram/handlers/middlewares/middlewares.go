package middlewares

import (
	"strings"

	"github.com/nlypage/intele"
	tele "gopkg.in/telebot.v3"

	"github.com/Steelnight/dumpdate-bot/cmd/bot"
)

type Handler struct {
	input *intele.InputManager
}

func New(b *bot.Bot) *Handler {
	return &Handler{
		input: b.Input,
	}
}

// ResetInputOnBack middleware clears a pending input state when the user
// presses back or issues a new command mid-dialog.
func (h Handler) ResetInputOnBack(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if c.Callback() != nil {
			if strings.HasPrefix(strings.TrimPrefix(c.Callback().Data, "\f"), "back") {
				h.input.Cancel(c.Sender().ID)
			}
		}
		if c.Message() != nil {
			if strings.HasPrefix(c.Message().Text, "/") {
				h.input.Cancel(c.Sender().ID)
			}
		}

		return next(c)
	}
}
