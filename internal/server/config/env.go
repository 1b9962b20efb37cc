package config

import "github.com/kelseyhightower/envconfig"

const envPrefix = "HOUSEKEEPER_SERVER"

// parseEnv overlays cfg with HOUSEKEEPER_SERVER_* variables.
func parseEnv(cfg *Config) {
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		panic(err)
	}
}
