package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("set default option", func(t *testing.T) {
		c := NewConfig()

		require.Equal(t, "localhost:8000", c.ListenAddr, "default listen address not set")
		require.Equal(t, "info", c.LogLevel, "default log level not set")
		require.Equal(t, "prod", c.Environment, "default environment not set")
		require.Equal(t, time.Hour, c.TokenExpiry, "default token expiry not set")
		require.Equal(t, 24*time.Hour, c.TokenRefreshWindow, "default token refresh window not set")
		require.Equal(t, "", c.SecretKey, "secret key should be empty by default")
	})

	t.Run("load env", func(t *testing.T) {
		c := NewConfig()
		getenv := func(key string) string {
			switch key {
			case "RUN_ADDRESS":
				return "localhost:9000"
			case "LOG_LEVEL":
				return "debug"
			case "SECRET_KEY":
				return "secret"
			case "ENVIRONMENT":
				return "dev"
			case "TOKEN_EXPIRY":
				return "15m"
			case "TOKEN_REFRESH_WINDOW":
				return "168h"
			default:
				return ""
			}
		}

		err := c.LoadEnv(getenv)

		require.NoError(t, err)
		require.Equal(t, "localhost:9000", c.ListenAddr)
		require.Equal(t, "debug", c.LogLevel)
		require.Equal(t, "secret", c.SecretKey)
		require.Equal(t, "dev", c.Environment)
		require.Equal(t, 15*time.Minute, c.TokenExpiry)
		require.Equal(t, 7*24*time.Hour, c.TokenRefreshWindow)
	})

	t.Run("load env keeps defaults for empty values", func(t *testing.T) {
		c := NewConfig()

		err := c.LoadEnv(func(string) string { return "" })

		require.NoError(t, err)
		require.Equal(t, NewConfig(), c)
	})

	t.Run("load env invalid duration", func(t *testing.T) {
		c := NewConfig()

		err := c.LoadEnv(func(key string) string {
			if key == "TOKEN_EXPIRY" {
				return "one hour"
			}
			return ""
		})

		require.Error(t, err, "invalid duration should return an error")
	})

	t.Run("load dot env", func(t *testing.T) {
		t.Run("file exists", func(t *testing.T) {
			dir := t.TempDir()
			err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SECRET_KEY=dotenv-secret\nTOKEN_EXPIRY=30s\n"), 0o600)
			require.NoError(t, err)

			c := NewConfig()
			err = c.LoadDotEnv(func() (string, error) { return dir, nil })

			require.NoError(t, err)
			require.Equal(t, "dotenv-secret", c.SecretKey)
			require.Equal(t, 30*time.Second, c.TokenExpiry)
		})

		t.Run("no file", func(t *testing.T) {
			c := NewConfig()

			err := c.LoadDotEnv(func() (string, error) { return t.TempDir(), nil })

			require.NoError(t, err, "missing .env is not an error")
			require.Equal(t, NewConfig(), c)
		})

		t.Run("getwd fails", func(t *testing.T) {
			c := NewConfig()

			err := c.LoadDotEnv(func() (string, error) { return "", errors.New("no wd") })

			require.Error(t, err)
		})
	})

	t.Run("parse flags", func(t *testing.T) {
		t.Run("valid flags", func(t *testing.T) {
			tests := []struct {
				name  string
				flags []string
			}{
				{
					name: "short",
					flags: []string{
						"-a", "localhost:9000",
						"-l", "debug",
						"-s", "secret",
						"-e", "dev",
						"--token-expiry", "15m",
						"--token-refresh-window", "48h",
					},
				},
				{
					name: "long",
					flags: []string{
						"--address", "localhost:9000",
						"--log-level", "debug",
						"--secret-key", "secret",
						"--environment", "dev",
						"--token-expiry", "15m",
						"--token-refresh-window", "48h",
					},
				},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					c := NewConfig()

					err := c.ParseFlags(tt.flags)

					require.NoError(t, err, "correct flags must parsed without error")
					require.Equal(t, "localhost:9000", c.ListenAddr)
					require.Equal(t, "debug", c.LogLevel)
					require.Equal(t, "secret", c.SecretKey)
					require.Equal(t, "dev", c.Environment)
					require.Equal(t, 15*time.Minute, c.TokenExpiry)
					require.Equal(t, 48*time.Hour, c.TokenRefreshWindow)
				})
			}
		})

		t.Run("invalid flags", func(t *testing.T) {
			c := NewConfig()

			err := c.ParseFlags([]string{
				"--invalid-flag", "value",
			})

			require.Error(t, err, "invalid flag should return an error")
		})
	})
}
