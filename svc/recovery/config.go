package recovery

import "time"

// Config holds reset-token settings.
type Config struct {
	TokenTTL time.Duration `env:"RESET_TOKEN_TTL" envDefault:"15m"`
	// URLBase is the public origin of the frontend serving /reset-password.
	URLBase string `env:"RESET_URL_BASE" envDefault:"http://localhost:8080"`
}
