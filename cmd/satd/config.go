package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/nkiryanov/sat/internal/logger"
	"github.com/nkiryanov/sat/internal/token"
)

const (
	defaultListenAddr         = "localhost:8000"
	defaultLoggingLevel       = logger.LevelInfo
	defaultEnvironment        = logger.EnvProduction
	defaultTokenExpiry        = token.DefaultExpiry
	defaultTokenRefreshWindow = token.DefaultRefreshWindow
)

type Config struct {
	// Default logging level
	LogLevel string

	// Address on which the token service will be run
	ListenAddr string

	// Secret key
	// Every token is signed with it, so it must be kept private and must not be empty
	SecretKey string

	// Environment
	Environment string

	// Token lifetime and refresh window used when a request does not set its own
	TokenExpiry        time.Duration
	TokenRefreshWindow time.Duration
}

func NewConfig() *Config {
	return &Config{
		LogLevel:           defaultLoggingLevel,
		ListenAddr:         defaultListenAddr,
		Environment:        defaultEnvironment,
		TokenExpiry:        defaultTokenExpiry,
		TokenRefreshWindow: defaultTokenRefreshWindow,
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
		"RUN_ADDRESS":          setString(&c.ListenAddr),
		"SECRET_KEY":           setString(&c.SecretKey),
		"LOG_LEVEL":            setString(&c.LogLevel),
		"ENVIRONMENT":          setString(&c.Environment),
		"TOKEN_EXPIRY":         setDuration(&c.TokenExpiry),
		"TOKEN_REFRESH_WINDOW": setDuration(&c.TokenRefreshWindow),
	}

	for key, parseFn := range envMap {
		if err := parseFn(getenv(key)); err != nil {
			return fmt.Errorf("invalid %s value. Err: %w", key, err)
		}
	}

	return nil
}

func (c *Config) ParseFlags(args []string) error {
	fs := pflag.NewFlagSet("satd", pflag.ContinueOnError)

	fs.StringVarP(&c.ListenAddr, "address", "a", c.ListenAddr, "Server listen address")
	fs.StringVarP(&c.SecretKey, "secret-key", "s", c.SecretKey, "Secret key to sign tokens")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (dev, prod)")
	fs.DurationVar(&c.TokenExpiry, "token-expiry", c.TokenExpiry, "Default token lifetime")
	fs.DurationVar(&c.TokenRefreshWindow, "token-refresh-window", c.TokenRefreshWindow, "Default time span a token may be refreshed in")

	return fs.Parse(args)
}
