package config

import "time"

// Config holds runtime settings for the Housekeeper CLI.
type Config struct {
	ServerEndpointAddr  string        `envconfig:"SERVER_ADDR"`
	NotificationURL     string        `envconfig:"NOTIFY_URL"`
	DatabasePath        string        `envconfig:"DB_PATH"`
	OnlineCheckInterval time.Duration `envconfig:"ONLINE_CHECK_INTERVAL"`
	SyncInterval        time.Duration `envconfig:"SYNC_INTERVAL"`
	BackoffInitial      time.Duration `envconfig:"BACKOFF_INITIAL"`
	BackoffMax          time.Duration `envconfig:"BACKOFF_MAX"`
	LogLevel            string        `envconfig:"LOG_LEVEL"`
	LogFile             string        `envconfig:"LOG_FILE"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.NotificationURL = "ws://127.0.0.1:8080/ws"
	c.DatabasePath = "housekeeper.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.SyncInterval = 24 * time.Hour
	c.BackoffInitial = 5 * time.Second
	c.BackoffMax = 10 * time.Minute
	c.LogLevel = "info"
	c.LogFile = ""
}

// LoadConfig builds a Config from defaults, then the JSON file, then
// HOUSEKEEPER_* environment variables, then command-line flags. Later
// sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
