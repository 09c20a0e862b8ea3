package main

import (
	"log"

	"github.com/Steelnight/dumpdate-bot/cmd/bot"
	"github.com/Steelnight/dumpdate-bot/internal/adapters/config"
	"github.com/Steelnight/dumpdate-bot/internal/adapters/controller/telegram/scheduler"
	setupBot "github.com/Steelnight/dumpdate-bot/internal/adapters/controller/telegram/setup"

	_ "time/tzdata"
)

func main() {
	cfg := config.Get()
	b, err := bot.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	setupBot.Setup(b)

	notifyScheduler, err := scheduler.New(b)
	if err != nil {
		log.Panic(err)
	}
	if err = notifyScheduler.Start(); err != nil {
		log.Panic(err)
	}
	defer notifyScheduler.Stop()

	b.Start()
}
