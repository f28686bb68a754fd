// Package config loads application configuration, environment-first: a
// local .env file is read if present, then DOGMATCH_-prefixed
// environment variables override the defaults. The loaded struct is
// validated before anything starts.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Petfinder PetfinderConfig `mapstructure:"petfinder"`
	Email     EmailConfig     `mapstructure:"email"`
}

type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=16"`
}

// PetfinderConfig configures the remote catalog client. ClientID and
// ClientSecret come from the catalog's developer portal.
type PetfinderConfig struct {
	BaseURL      string `mapstructure:"base_url" validate:"required,url"`
	ClientID     string `mapstructure:"client_id" validate:"required"`
	ClientSecret string `mapstructure:"client_secret" validate:"required"`
}

// EmailConfig configures outbound mail. With an empty region, mail is
// logged instead of sent.
type EmailConfig struct {
	SESRegion string `mapstructure:"ses_region"`
	Sender    string `mapstructure:"sender" validate:"required_with=SESRegion,omitempty,email"`
}

// Load reads .env (when present), applies DOGMATCH_ environment
// overrides and validates the result. Env keys use underscores for
// nesting: DOGMATCH_SERVER_PORT, DOGMATCH_AUTH_JWT_SECRET, and so on.
func Load() (*Config, error) {
	// Missing .env is fine; env vars and defaults carry the day.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.path", "dogmatch.db")
	v.SetDefault("petfinder.base_url", "https://api.petfinder.com/v2")
	v.SetDefault("email.ses_region", "")
	v.SetDefault("email.sender", "")

	v.SetEnvPrefix("DOGMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv alone does not surface env-only keys to Unmarshal;
	// binding each known key explicitly does.
	for _, key := range []string{
		"server.port", "server.log_level",
		"database.path",
		"auth.jwt_secret",
		"petfinder.base_url", "petfinder.client_id", "petfinder.client_secret",
		"email.ses_region", "email.sender",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("config: binding %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: validating: %w", err)
	}
	return &cfg, nil
}
