package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// MongoConfig holds the MongoDB connection settings
type MongoConfig struct {
	URI            string        `env:"URI" envDefault:"mongodb://localhost:27017"`
	DatabaseName   string        `env:"DATABASE" envDefault:"techquiz"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"30s"`
	AppName        string        `env:"APP_NAME" envDefault:"techquiz-seed"`
}

// SeedConfig selects what gets cleaned and reseeded
type SeedConfig struct {
	ModelName      string `env:"MODEL" envDefault:"Question"`
	CollectionName string `env:"COLLECTION" envDefault:"questions"`
	// DataFile is a YAML file of questions. Empty uses the embedded sample set.
	DataFile string `env:"FILE"`
}

// LogConfig controls the logger backend
type LogConfig struct {
	Level   string `env:"LEVEL" envDefault:"info"`
	Format  string `env:"FORMAT" envDefault:"text"`
	Backend string `env:"BACKEND" envDefault:"logrus"`
}

// RedisConfig holds the seed journal settings
type RedisConfig struct {
	Enabled         bool          `env:"ENABLED" envDefault:"false"`
	Host            string        `env:"HOST" envDefault:"localhost"`
	Port            string        `env:"PORT" envDefault:"6379"`
	Password        string        `env:"PASSWORD"`
	Database        int           `env:"DB" envDefault:"0"`
	MaxRetries      int           `env:"MAX_RETRIES" envDefault:"3"`
	PoolSize        int           `env:"POOL_SIZE" envDefault:"4"`
	EnableTLS       bool          `env:"TLS" envDefault:"false"`
	DialTimeout     time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
	ConnMaxIdleTime time.Duration `env:"CONN_MAX_IDLE_TIME" envDefault:"30m"`
	Stream          string        `env:"STREAM" envDefault:"seed:journal"`
	StreamMaxLength int64         `env:"STREAM_MAX_LEN" envDefault:"1000"`
}

// GetAddr returns host:port
func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// AdminConfig holds the admin HTTP API settings
type AdminConfig struct {
	Host      string        `env:"HOST" envDefault:"localhost"`
	Port      string        `env:"PORT" envDefault:"3001"`
	JWTSecret string        `env:"JWT_SECRET"`
	JWTIssuer string        `env:"JWT_ISSUER" envDefault:"techquiz-seed-admin"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"15m"`

	// BootstrapSubject, when set, makes seed-admin log a token for that subject at startup
	BootstrapSubject string `env:"BOOTSTRAP_SUBJECT"`
}

// Addr returns host:port for the admin listener
func (a *AdminConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// Config holds all configuration for the seeding tools.
type Config struct {
	Environment string      `env:"ENVIRONMENT" envDefault:"development"`
	Mongo       MongoConfig `envPrefix:"MONGODB_"`
	Seed        SeedConfig  `envPrefix:"SEED_"`
	Log         LogConfig   `envPrefix:"LOG_"`
	Redis       RedisConfig `envPrefix:"REDIS_"`
	Admin       AdminConfig `envPrefix:"ADMIN_"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load configuration from environment: " + err.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings every command needs
func (c *Config) Validate() error {
	if c.Mongo.URI == "" {
		return errors.New("MONGODB_URI is required")
	}
	if c.Mongo.DatabaseName == "" {
		return errors.New("MONGODB_DATABASE is required")
	}
	if c.Mongo.ConnectTimeout <= 0 {
		return errors.New("MONGODB_CONNECT_TIMEOUT must be positive")
	}
	if c.Seed.ModelName == "" {
		return errors.New("SEED_MODEL is required")
	}
	if c.Seed.CollectionName == "" {
		return errors.New("SEED_COLLECTION is required")
	}
	if c.Redis.Enabled && c.Redis.Stream == "" {
		return errors.New("REDIS_STREAM is required when REDIS_ENABLED is set")
	}
	return nil
}

// ValidateAdmin checks the settings only the admin API needs
func (c *Config) ValidateAdmin() error {
	if c.Admin.JWTSecret == "" {
		return errors.New("ADMIN_JWT_SECRET is required")
	}
	if c.Admin.JWTIssuer == "" {
		return errors.New("ADMIN_JWT_ISSUER is required")
	}
	if c.Admin.TokenTTL <= 0 {
		return errors.New("ADMIN_TOKEN_TTL must be positive")
	}
	return nil
}

// IsProduction reports whether ENVIRONMENT names a production deployment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}
