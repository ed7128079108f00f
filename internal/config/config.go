package config

import (
	"os"
	"strconv"

	authservice "kitserver/auth/service"

	"github.com/BurntSushi/toml"
)

const defaultPort = 3000

type Server struct {
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	Debug      bool   `toml:"debug_mode"`
	SqliteFile string `toml:"sqlite_file"`
}

type TgBot struct {
	TgBotEnabled     bool   `toml:"tg_bot_enabled"`
	TelegramApiToken string `toml:"telegram_apitoken"`
}

type Config struct {
	Server Server             `toml:"server"`
	Auth   authservice.Config `toml:"auth"`
	TgBot  TgBot              `toml:"tg_bot"`
}

func New(path string) (Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return Config{}, err
		}
		cfg.Server.Port = p
	}
	if token := os.Getenv("TELEGRAM_APITOKEN"); token != "" {
		cfg.TgBot.TelegramApiToken = token
	}
	return cfg, nil
}
