package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const minJWTSecretLength = 32

// Config holds all configuration for the application.
// Values are read from an optional app.env file and overridden by environment variables.
type Config struct {
	AppEnv       string `mapstructure:"APP_ENV"`
	ServerPort   string `mapstructure:"PORT"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	MongoDBURI   string `mapstructure:"MONGODB_URI"` // legacy name for DATABASE_URL
	DatabaseName string `mapstructure:"DATABASE_NAME"`
	ClientOrigin string `mapstructure:"CLIENT_ORIGIN"`
	UploadDir    string `mapstructure:"UPLOAD_DIR"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTExpiry time.Duration `mapstructure:"JWT_EXPIRY"`

	// AssignmentDelay is how long a new ride request waits before a fixture driver is attached.
	AssignmentDelay time.Duration `mapstructure:"ASSIGNMENT_DELAY"`

	AWSRegion string `mapstructure:"AWS_REGION"`
	EmailFrom string `mapstructure:"EMAIL_FROM"`

	AMQPURL string `mapstructure:"AMQP_URL"`

	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
}

var defaults = map[string]any{
	"APP_ENV":              "development",
	"PORT":                 "3000",
	"DATABASE_URL":         "",
	"MONGODB_URI":          "",
	"DATABASE_NAME":        "ridehail",
	"CLIENT_ORIGIN":        "*",
	"UPLOAD_DIR":           "uploads",
	"LOG_LEVEL":            "info",
	"JWT_SECRET":           "",
	"JWT_EXPIRY":           "24h",
	"ASSIGNMENT_DELAY":     "5s",
	"AWS_REGION":           "",
	"EMAIL_FROM":           "",
	"AMQP_URL":             "",
	"GOOGLE_CLIENT_ID":     "",
	"GOOGLE_CLIENT_SECRET": "",
	"GOOGLE_REDIRECT_URL":  "",
}

// LoadConfig reads configuration from path/app.env (if present) and the environment,
// then validates it. Any problem is returned as a single descriptive error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config.LoadConfig: read app.env: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config.LoadConfig: unmarshal: %w", err)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = cfg.MongoDBURI
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every missing or malformed value at once.
func (c *Config) Validate() error {
	var problems []string

	if c.DatabaseURL == "" {
		problems = append(problems, "DATABASE_URL (or MONGODB_URI) is required")
	} else if c.StoreDriver() == "" {
		problems = append(problems, "DATABASE_URL must start with postgres://, postgresql://, mongodb:// or mongodb+srv://")
	}
	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	} else if len(c.JWTSecret) < minJWTSecretLength {
		problems = append(problems, fmt.Sprintf("JWT_SECRET must be at least %d characters long", minJWTSecretLength))
	}
	if c.ServerPort == "" {
		problems = append(problems, "PORT is required")
	}
	if c.JWTExpiry <= 0 {
		problems = append(problems, "JWT_EXPIRY must be a positive duration")
	}
	if c.AssignmentDelay < 0 {
		problems = append(problems, "ASSIGNMENT_DELAY must not be negative")
	}
	if c.AppEnv != "development" && c.AppEnv != "production" {
		problems = append(problems, "APP_ENV must be development or production")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// StoreDriver returns "postgres" or "mongo" based on the DATABASE_URL scheme, or "".
func (c *Config) StoreDriver() string {
	switch {
	case strings.HasPrefix(c.DatabaseURL, "postgres://"), strings.HasPrefix(c.DatabaseURL, "postgresql://"):
		return "postgres"
	case strings.HasPrefix(c.DatabaseURL, "mongodb://"), strings.HasPrefix(c.DatabaseURL, "mongodb+srv://"):
		return "mongo"
	}
	return ""
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) EmailEnabled() bool {
	return c.AWSRegion != "" && c.EmailFrom != ""
}

func (c *Config) GoogleLoginEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != "" && c.GoogleRedirectURL != ""
}
