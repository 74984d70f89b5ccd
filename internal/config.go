package internal

import (
	"fmt"
	"strings"
	"time"
)

// Config holds every environment-driven setting of the service. CLI flags
// may override the network fields.
type Config struct {
	Host              string        `env:"CHAT_HOST,default=0.0.0.0"`
	Port              int           `env:"CHAT_PORT,default=30388" validate:"gte=0,lte=65535"`
	ServerName        string        `env:"CHAT_SERVER_NAME,default=chat-go"`
	LogLevel          string        `env:"LOG_LEVEL,default=INFO"`
	TelemetryInterval time.Duration `env:"TELEMETRY_INTERVAL,default=30s" validate:"gt=0"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,default=200ms" validate:"gt=0"`
	DebugPort         int           `env:"DEBUG_PORT,default=0" validate:"gte=0,lte=65535"`

	// Comma-separated word list; empty disables moderation entirely.
	ModerationWords string `env:"MODERATION_WORDS"`
	CharReplacement string `env:"MODERATION_CHARACTER_REPLACEMENT,default=*"`
}

// Words splits the configured moderation list.
func (c Config) Words() []string {
	if c.ModerationWords == "" {
		return nil
	}
	words := strings.Split(c.ModerationWords, ",")
	for i := range words {
		words[i] = strings.TrimSpace(words[i])
	}
	return words
}

// CharacterRune validates that the replacement setting is one character.
func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"MODERATION_CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
