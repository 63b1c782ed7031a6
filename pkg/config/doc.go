// Package config loads typed configuration structs from environment variables.
//
// Struct fields declare their variables with github.com/caarlos0/env tags. A
// .env file in the working directory is read once (github.com/joho/godotenv)
// before the first load; real environment variables take precedence.
//
//	type Config struct {
//		Secret string        `env:"JWT_SECRET,required"`
//		TTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`
//	}
//
//	cfg, err := config.Load[Config]()
//
// Load caches the result per type, so every package asking for the same
// section sees the same values.
package config
