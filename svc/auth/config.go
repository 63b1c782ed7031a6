package auth

// Config holds password policy settings.
type Config struct {
	BcryptCost        int `env:"BCRYPT_COST" envDefault:"12"`
	MinPasswordLength int `env:"PASSWORD_MIN_LENGTH" envDefault:"6"`
}
