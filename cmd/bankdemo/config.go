package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/nkiryanov/bankdemo/internal/apperrors"
	"github.com/nkiryanov/bankdemo/internal/logger"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

const (
	defaultListenAddr   = "localhost:8000"
	defaultLoggingLevel = logger.LevelInfo
	defaultEnvironment  = logger.EnvProduction
	defaultStorage      = StoragePostgres
	defaultTokenTTL     = time.Hour
)

type Config struct {
	// Default logging level
	LogLevel string

	// Address on which the bankdemo service will be run
	ListenAddr string

	// Storage backend: postgres or memory
	Storage string

	// Database to connect to, required for postgres storage
	DatabaseDSN string

	// Secret key
	// Access tokens are signed with key derived from it, so it must be set
	SecretKey string

	// Access token lifetime
	TokenTTL time.Duration

	// Environment
	Environment string
}

func NewConfig() *Config {
	return &Config{
		LogLevel:    defaultLoggingLevel,
		ListenAddr:  defaultListenAddr,
		Storage:     defaultStorage,
		TokenTTL:    defaultTokenTTL,
		Environment: defaultEnvironment,
	}
}

// Load variable from '.env' file (should be located at working directory)
func (c *Config) LoadDotEnv(getwd func() (string, error)) error {
	wd, err := getwd()
	if err != nil {
		return err
	}

	envMap, err := godotenv.Read(filepath.Join(wd, ".env"))

	switch {
	case err == nil:
		return c.LoadEnv(func(key string) string {
			return envMap[key]
		})
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

func (c *Config) LoadEnv(getenv func(string) string) error {
	// Set option to value if it not empty
	setString := func(o *string) func(value string) error {
		return func(value string) error {
			if value != "" {
				*o = value
			}
			return nil
		}
	}
	setDuration := func(o *time.Duration) func(value string) error {
		return func(value string) error {
			if value == "" {
				return nil
			}
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			*o = d
			return nil
		}
	}

	envMap := map[string]func(string) error{
		"RUN_ADDRESS":  setString(&c.ListenAddr),
		"DATABASE_URI": setString(&c.DatabaseDSN),
		"STORAGE":      setString(&c.Storage),
		"SECRET_KEY":   setString(&c.SecretKey),
		"TOKEN_TTL":    setDuration(&c.TokenTTL),
		"LOG_LEVEL":    setString(&c.LogLevel),
		"ENVIRONMENT":  setString(&c.Environment),
	}

	for key, parseFn := range envMap {
		if err := parseFn(getenv(key)); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}

	return nil
}

func (c *Config) ParseFlags(args []string) error {
	fs := pflag.NewFlagSet("bankdemo", pflag.ContinueOnError)

	fs.StringVarP(&c.ListenAddr, "address", "a", c.ListenAddr, "Server listen address")
	fs.StringVarP(&c.DatabaseDSN, "database", "d", c.DatabaseDSN, "Database connection string")
	fs.StringVarP(&c.Storage, "storage", "b", c.Storage, "Storage backend (postgres, memory)")
	fs.StringVarP(&c.SecretKey, "secret-key", "s", c.SecretKey, "Secret key")
	fs.DurationVarP(&c.TokenTTL, "token-ttl", "t", c.TokenTTL, "Access token lifetime")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (development, production)")

	return fs.Parse(args)
}

// Validate checks config may be used to start the server
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("%w: secret key must be set", apperrors.ErrConfiguration)
	}

	if c.TokenTTL <= 0 {
		return fmt.Errorf("%w: token ttl must be positive", apperrors.ErrConfiguration)
	}

	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("%w: database dsn must be set for postgres storage", apperrors.ErrConfiguration)
		}
	default:
		return fmt.Errorf("%w: unknown storage %q", apperrors.ErrConfiguration, c.Storage)
	}

	return nil
}
