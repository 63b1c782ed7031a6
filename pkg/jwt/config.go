package jwt

import "time"

// Config holds token signing settings.
type Config struct {
	Secret string        `env:"JWT_SECRET,required"`
	TTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`
	Issuer string        `env:"JWT_ISSUER"`
}
