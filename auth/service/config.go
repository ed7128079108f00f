package service

type Config struct {
	SessionTTL    string `toml:"session_ttl"`
	AdminNickname string `toml:"admin_nickname"`
	AdminPassword string `toml:"admin_password"`
	BcryptCost    int    `toml:"bcrypt_cost"`
}
