package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"todolist-be/internal/bootstrap"
	"todolist-be/internal/bot"
	"todolist-be/internal/config"
	"todolist-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if cfg.Telegram.Token == "" {
		log.Fatal("Error: TELEGRAM_BOT_TOKEN is not set")
	}

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 5. Run the bot until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := bot.New(cfg.Telegram.Token, cfg.Telegram.PollTimeout, container.BotHandler, container.Logger)
	if err != nil {
		log.Fatalf("Unable to start Telegram bot: %v", err)
	}

	if err := b.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Bot stopped: %v", err)
	}
	log.Println("Bot shut down")
}
