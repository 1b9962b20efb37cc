package config

import "github.com/kelseyhightower/envconfig"

const envPrefix = "HOUSEKEEPER"

// parseEnv overlays cfg with HOUSEKEEPER_* variables. Unset variables keep
// their current values.
func parseEnv(cfg *Config) {
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		panic(err)
	}
}
