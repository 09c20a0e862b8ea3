package bot

import (
	"github.com/nlypage/intele"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"
	"gorm.io/gorm"

	"github.com/Steelnight/dumpdate-bot/internal/adapters/config"
	"github.com/Steelnight/dumpdate-bot/internal/adapters/database/redis"
	"github.com/Steelnight/dumpdate-bot/pkg/logger"
	"github.com/Steelnight/dumpdate-bot/pkg/logger/types"
)

type Bot struct {
	*tele.Bot
	Layout *layout.Layout
	DB     *gorm.DB
	Redis  *redis.Client
	Logger *types.Logger
	Input  *intele.InputManager
}

func New(config *config.Config) (*Bot, error) {
	lt, err := layout.New("telegram.yml")
	if err != nil {
		return nil, err
	}

	settings := lt.Settings()
	botLogger, err := logger.Named("bot")
	if err != nil {
		return nil, err
	}
	settings.OnError = func(err error, ctx tele.Context) {
		if ctx.Callback() == nil {
			botLogger.Errorf("(user: %d) | Error: %v", ctx.Sender().ID, err)
		} else {
			botLogger.Errorf("(user: %d) | data: %s | Error: %v", ctx.Sender().ID, ctx.Callback().Data, err)
		}
	}

	b, err := tele.NewBot(settings)
	if err != nil {
		return nil, err
	}

	if cmds := lt.Commands(); cmds != nil {
		if err = b.SetCommands(cmds); err != nil {
			return nil, err
		}
	}

	bot := &Bot{
		Bot:    b,
		Layout: lt,
		DB:     config.Database,
		Redis:  config.Redis,
		Input: intele.NewInputManager(intele.InputOptions{
			Storage: config.Redis.States,
		}),
		Logger: botLogger,
	}

	return bot, nil
}

func (b *Bot) Start() {
	logger.Log.Info("Bot starting")
	b.Bot.Start()
}
