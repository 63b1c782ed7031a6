package app

// Storage drivers accepted in Config.StorageDriver.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds process-level settings.
type Config struct {
	Env           string `env:"APP_ENV" envDefault:"development"`
	Name          string `env:"APP_NAME" envDefault:"marketplace"`
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"memory"`
}
