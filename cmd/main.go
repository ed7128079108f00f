package main

import (
	"context"
	"fmt"
	"os"

	authservice "kitserver/auth/service"
	authsqlite "kitserver/auth/storage/sqlite"
	"kitserver/internal/config"
	"kitserver/internal/logger"
	sqlite3 "kitserver/internal/migrate"
	"kitserver/internal/notify"
	"kitserver/internal/service"
	"kitserver/internal/storage"
	kitsqlite "kitserver/internal/storage/sqlite"
	"kitserver/internal/web"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()
	cfg, err := config.New("configs/server.toml")
	if err != nil {
		return err
	}
	log := logger.New()

	db, err := storage.New(cfg.Server.SqliteFile)
	if err != nil {
		return err
	}
	err = sqlite3.Up(db)
	if err != nil {
		return err
	}

	authStorage := authsqlite.New(log, db)
	authService, err := authservice.New(ctx, log, cfg.Auth, authStorage, authStorage)
	if err != nil {
		return err
	}

	var notifyFn func(msg string)
	if cfg.TgBot.TgBotEnabled {
		bot, err := notify.New(cfg.TgBot, log)
		if err != nil {
			log.WithError(err).Warn("telegram notifications disabled")
		} else {
			go bot.Run()
			defer bot.Stop()
			notifyFn = bot.Notify
		}
	}

	kitService := service.New(kitsqlite.New(db), notifyFn)

	server, err := web.New(log, cfg.Server, kitService, authService, notifyFn)
	if err != nil {
		return err
	}
	log.WithField("port", cfg.Server.Port).Info("server started")
	return server.Serve()
}
