package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type StoreDriver string

const (
	DriverPostgres StoreDriver = "postgres"
	DriverMongo    StoreDriver = "mongo"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"5000"`
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	JWTSecret   string `env:"JWT_SECRET,required,notEmpty"`
	// Used only when the Mongo URI has no database path
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"interview_experience"`
	// Cross-origin callers allowed to use the API
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	BcryptCost     int      `env:"BCRYPT_COST" envDefault:"10"`
	LogLevel       int      `env:"LOG_LEVEL" envDefault:"0"`
	GinMode        string   `env:"GIN_MODE" envDefault:"debug"`
}

// LoadConfig reads .env (if present, local only) and the process environment.
// It fails when JWT_SECRET or DATABASE_URL is missing.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	return parse(env.Options{})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.AllowedOrigins = cleanOrigins(cfg.AllowedOrigins)
	if _, err := cfg.Driver(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Driver picks the store implementation from the DATABASE_URL scheme.
func (c *Config) Driver() (StoreDriver, error) {
	switch {
	case strings.HasPrefix(c.DatabaseURL, "postgres://"), strings.HasPrefix(c.DatabaseURL, "postgresql://"):
		return DriverPostgres, nil
	case strings.HasPrefix(c.DatabaseURL, "mongodb://"), strings.HasPrefix(c.DatabaseURL, "mongodb+srv://"):
		return DriverMongo, nil
	default:
		return "", fmt.Errorf("unsupported DATABASE_URL scheme, expected postgres:// or mongodb://")
	}
}

// Trailing slashes would never match an Origin header
func cleanOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
