package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Google   GoogleConfig   `mapstructure:"google"   validate:"required"`
	Hunter   HunterConfig   `mapstructure:"hunter"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
//
// JWTSecret is the symmetric signing key and must be at least 32 characters.
// TokenLifetimeMinutes bounds the validity of issued access tokens.
// BcryptCost controls the work factor of password hashing; existing digests
// embed their own cost and keep verifying after the setting changes.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"omitempty,gte=4,lte=31"`
}

// GoogleConfig contains the OAuth client settings for the Google sign-in flow.
type GoogleConfig struct {
	ClientID     string `mapstructure:"client_id"     validate:"required"`
	ClientSecret string `mapstructure:"client_secret" validate:"required"`
	RedirectURL  string `mapstructure:"redirect_url"  validate:"required,url"`
}

// HunterConfig contains settings for the hunter.io email verification service.
// An empty APIKey disables the external check; sign-up then accepts any
// syntactically valid address.
type HunterConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// CacheConfig controls the in-memory read cache for catalog endpoints.
type CacheConfig struct {
	TTLMinutes int `mapstructure:"ttl_minutes" validate:"omitempty,gt=0"`
}
