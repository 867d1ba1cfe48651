// Package app loads the client configuration and wires its components.
package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Config is read from the environment, optionally seeded from a .env file.
type Config struct {
	MongoURI        string        `env:"MONGODB_URI,required=true"`
	MongoDatabase   string        `env:"MONGODB_DATABASE,default=chat_db"`
	JWTSecret       string        `env:"JWT_SECRET"`
	JWTKeys         string        `env:"JWT_KEYS"`
	JWTActiveKid    string        `env:"JWT_ACTIVE_KID"`
	SessionDuration time.Duration `env:"SESSION_DURATION,default=24h"`
	RateLimitRPM    int           `env:"RATE_LIMIT_RPM,default=10"`
	RateLimitBurst  int           `env:"RATE_LIMIT_BURST,default=3"`
	JoinConcurrency int           `env:"JOIN_CONCURRENCY,default=8"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`

	Email       string `env:"CHATSYNC_EMAIL"`
	Password    string `env:"CHATSYNC_PASSWORD"`
	DisplayName string `env:"CHATSYNC_DISPLAY_NAME"`
	Register    bool   `env:"CHATSYNC_REGISTER,default=false"`
	Token       string `env:"CHATSYNC_TOKEN"`
}

// LoadConfig reads .env when present, then the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the environment tags cannot express.
func (c *Config) Validate() error {
	if c.JWTKeys == "" && c.JWTSecret == "" {
		return errors.New("either JWT_SECRET or JWT_KEYS must be set")
	}
	if c.JWTKeys != "" {
		keys, err := c.SigningKeys()
		if err != nil {
			return err
		}
		if _, ok := keys[c.JWTActiveKid]; !ok {
			return fmt.Errorf("JWT_ACTIVE_KID %q has no key in JWT_KEYS", c.JWTActiveKid)
		}
	}
	if c.SessionDuration <= 0 {
		return fmt.Errorf("SESSION_DURATION must be positive, got %s", c.SessionDuration)
	}
	if c.Email == "" && c.Token == "" {
		return errors.New("either CHATSYNC_EMAIL or CHATSYNC_TOKEN must be set")
	}
	return nil
}

// SigningKeys parses JWT_KEYS, formatted kid:secret,kid2:secret2.
func (c *Config) SigningKeys() (map[string]string, error) {
	keys := map[string]string{}
	for _, p := range strings.Split(c.JWTKeys, ",") {
		if p == "" {
			continue
		}
		kid, secret, ok := strings.Cut(p, ":")
		if !ok || kid == "" || secret == "" {
			return nil, fmt.Errorf("invalid JWT_KEYS entry: %s", p)
		}
		keys[kid] = secret
	}
	return keys, nil
}
