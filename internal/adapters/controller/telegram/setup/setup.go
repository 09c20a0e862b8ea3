package setup

import (
	"github.com/spf13/viper"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"

	"github.com/Steelnight/dumpdate-bot/cmd/bot"
	"github.com/Steelnight/dumpdate-bot/internal/adapters/controller/telegram/handlers/middlewares"
	"github.com/Steelnight/dumpdate-bot/internal/adapters/controller/telegram/handlers/user"
)

func Setup(b *bot.Bot) {
	// Pre-setup and global middlewares
	middle := middlewares.New(b)
	userHandler := user.New(b)

	if viper.GetBool("settings.debug") {
		b.Use(middleware.Logger())
	}
	b.Use(b.Layout.Middleware("en"))
	b.Use(middleware.AutoRespond())
	b.Handle(tele.OnText, b.Input.Handler())
	b.Use(middle.ResetInputOnBack)

	// Commands
	b.Handle("/start", userHandler.Start)
	b.Handle("/settings", userHandler.Settings)
	b.Handle("/stop", userHandler.Stop)

	// Every inline button goes through the payload parser
	b.Handle(tele.OnCallback, userHandler.OnCallback)
}
