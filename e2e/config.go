package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

// Config points the suite at an externally running chat server. The suite
// skips itself when no address is configured.
type Config struct {
	ServerAddr string `envconfig:"CHAT_E2E_ADDR"`
	// CHAT_E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"CHAT_E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
