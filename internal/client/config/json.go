package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/housekeeper/internal/flagx"
	"github.com/dmitrijs2005/housekeeper/internal/timex"
)

// JsonConfig is the on-disk shape of Config. Durations accept "3s" or
// integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	NotificationURL     string         `json:"notification_url"`
	DatabasePath        string         `json:"database_path"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	SyncInterval        timex.Duration `json:"sync_interval"`
	BackoffInitial      timex.Duration `json:"backoff_initial"`
	BackoffMax          timex.Duration `json:"backoff_max"`
	LogLevel            string         `json:"log_level"`
	LogFile             string         `json:"log_file"`
}

// parseJson overlays cfg with the file named by -c / -config. Fields absent
// from the file keep their current values. Panics on read or decode errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:], "HOUSEKEEPER_CONFIG")
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	setString(&cfg.NotificationURL, jc.NotificationURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFile, jc.LogFile)
	setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval)
	setDuration(&cfg.SyncInterval, jc.SyncInterval)
	setDuration(&cfg.BackoffInitial, jc.BackoffInitial)
	setDuration(&cfg.BackoffMax, jc.BackoffMax)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
