package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSONConfig(t *testing.T, content string) string {
	fileName := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(fileName, []byte(content), 0644))

	return fileName
}

func TestNewAppliesDefaults(t *testing.T) {
	cfg, err := New(WithDisableFlagsParsing(true))
	require.NoError(t, err)

	assert.Equal(t, defaultConfig.RunAddr, cfg.RunAddr)
	assert.Equal(t, defaultConfig.LogLevel, cfg.LogLevel)
	assert.Equal(t, defaultConfig.DBConnectionTimeout, cfg.DBConnectionTimeout)
	assert.Equal(t, defaultConfig.AuthCookieName, cfg.AuthCookieName)
	assert.Equal(t, defaultConfig.MigrationsDir, cfg.MigrationsDir)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	values := Config{
		RunAddr:  ":9090",
		LogLevel: "debug",
	}
	applyDefaults(&values, defaultConfig)

	assert.Equal(t, ":9090", values.RunAddr)
	assert.Equal(t, "debug", values.LogLevel)
	assert.Equal(t, defaultConfig.AuthCookieName, values.AuthCookieName)
	assert.Equal(t, defaultConfig.DBConnectionTimeout, values.DBConnectionTimeout)
}

func TestNewReadsJSONConfigFile(t *testing.T) {
	fileName := writeTempJSONConfig(t, `{
	"server_address": ":9191",
	"log_level": "debug",
	"trusted_subnet": "10.0.0.0/8"
}`)

	cfg, err := New(
		WithDisableFlagsParsing(true),
		WithConfigFile(fileName),
	)
	require.NoError(t, err)

	assert.Equal(t, ":9191", cfg.RunAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "10.0.0.0/8", cfg.TrustedSubnet)

	// Settings absent from the file keep their defaults.
	assert.Equal(t, defaultConfig.AuthCookieName, cfg.AuthCookieName)
	assert.Equal(t, defaultConfig.MigrationsDir, cfg.MigrationsDir)
}

func TestNewEnvironmentOverridesJSONConfigFile(t *testing.T) {
	fileName := writeTempJSONConfig(t, `{"server_address": ":9191"}`)

	t.Setenv("SERVER_ADDRESS", ":7777")
	t.Setenv("DB_CONNECTION_TIMEOUT", "3s")

	cfg, err := New(
		WithDisableFlagsParsing(true),
		WithConfigFile(fileName),
	)
	require.NoError(t, err)

	assert.Equal(t, ":7777", cfg.RunAddr)
	assert.Equal(t, 3*time.Second, cfg.DBConnectionTimeout)
}

func TestNewMissingConfigFile(t *testing.T) {
	_, err := New(
		WithDisableFlagsParsing(true),
		WithConfigFile(filepath.Join(t.TempDir(), "no-such-file.json")),
	)
	assert.Error(t, err)
}

func TestNewValidatesValues(t *testing.T) {
	type tTestCase struct {
		name     string
		envName  string
		envValue string
	}
	testCases := []tTestCase{
		{name: "bad_log_level", envName: "LOG_LEVEL", envValue: "loudest"},
		{name: "bad_run_addr", envName: "SERVER_ADDRESS", envValue: "not a hostport"},
		{name: "bad_trusted_subnet", envName: "TRUSTED_SUBNET", envValue: "10.0.0.0"},
		{name: "bad_signing_key", envName: "AUTH_COOKIE_SIGNING_SECRET_KEY", envValue: "%%%not-base64%%%"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Setenv(testCase.envName, testCase.envValue)

			_, err := New(WithDisableFlagsParsing(true))
			assert.Error(t, err)
		})
	}
}
