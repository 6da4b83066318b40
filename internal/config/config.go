// Package config assembles the application configuration from defaults,
// an optional JSON config file, command line flags, and environment variables
// (in that order of precedence, environment winning).
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings of the daybook service.
type Config struct {
	RunAddr                    string        `env:"SERVER_ADDRESS" json:"server_address" validate:"hostname_port"`
	LogLevel                   string        `env:"LOG_LEVEL" json:"log_level" validate:"loglevel"`
	DBFileName                 string        `env:"FILE_STORAGE_PATH" json:"file_storage_path" validate:"filepath"`
	DatabaseDSN                string        `env:"DATABASE_DSN" json:"database_dsn"`
	DBConnectionTimeout        time.Duration `env:"DB_CONNECTION_TIMEOUT" json:"db_connection_timeout"`
	MigrationsDir              string        `env:"MIGRATIONS_DIR" json:"migrations_dir"`
	AuthCookieName             string        `env:"AUTH_COOKIE_NAME" json:"auth_cookie_name"`
	AuthCookieSigningSecretKey string        `env:"AUTH_COOKIE_SIGNING_SECRET_KEY" json:"auth_cookie_signing_secret_key" validate:"base64url"`
	TrustedSubnet              string        `env:"TRUSTED_SUBNET" json:"trusted_subnet" validate:"omitempty,cidr"`
}

var defaultConfig = Config{
	RunAddr:                    ":8080",
	LogLevel:                   "info",
	DBFileName:                 "",
	DatabaseDSN:                "",
	DBConnectionTimeout:        10 * time.Second,
	MigrationsDir:              "cmd/daybook/migrations",
	AuthCookieName:             "daybook_auth",
	AuthCookieSigningSecretKey: "c3VwZXJTZWNyZXRLZXk=",
	TrustedSubnet:              "",
}

func validateFilePath(fieldLevel validator.FieldLevel) bool {
	path := fieldLevel.Field().String()
	if path == "" {
		return true
	}
	_, err := os.Stat(path)

	return err == nil || os.IsNotExist(err)
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	value := fieldLevel.Field().String()

	allowedLogLevels := map[string]bool{
		"debug":   true,
		"info":    true,
		"warning": true,
		"error":   true,
		"fatal":   true,
	}

	return allowedLogLevels[value]
}

func (c *Config) validate() error {
	validate := validator.New()

	err := validate.RegisterValidation("loglevel", validateLogLevel)
	if err != nil {
		return err
	}

	err = validate.RegisterValidation("filepath", validateFilePath)
	if err != nil {
		return err
	}

	return validate.Struct(c)
}

func applyDefaults(values *Config, defaults Config) {
	if values.RunAddr == "" {
		values.RunAddr = defaults.RunAddr
	}
	if values.LogLevel == "" {
		values.LogLevel = defaults.LogLevel
	}
	if values.DBFileName == "" {
		values.DBFileName = defaults.DBFileName
	}
	if values.DatabaseDSN == "" {
		values.DatabaseDSN = defaults.DatabaseDSN
	}
	if values.DBConnectionTimeout == 0 {
		values.DBConnectionTimeout = defaults.DBConnectionTimeout
	}
	if values.MigrationsDir == "" {
		values.MigrationsDir = defaults.MigrationsDir
	}
	if values.AuthCookieName == "" {
		values.AuthCookieName = defaults.AuthCookieName
	}
	if values.AuthCookieSigningSecretKey == "" {
		values.AuthCookieSigningSecretKey = defaults.AuthCookieSigningSecretKey
	}
	if values.TrustedSubnet == "" {
		values.TrustedSubnet = defaults.TrustedSubnet
	}
}

func loadJSONConfig(fileName string, values *Config) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, values)
}

// InitOption is a functional option for configuring initialization.
type InitOption func(*initOptions)

type initOptions struct {
	disableFlagsParsing bool
	configFile          string
}

// WithDisableFlagsParsing disables command line flag parsing,
// which is needed when Config is constructed inside tests.
func WithDisableFlagsParsing(disableFlagsParsing bool) InitOption {
	return func(options *initOptions) {
		options.disableFlagsParsing = disableFlagsParsing
	}
}

// WithConfigFile sets the path of the JSON config file to load.
func WithConfigFile(configFile string) InitOption {
	return func(options *initOptions) {
		options.configFile = configFile
	}
}

// New builds the configuration: defaults, then the JSON config file
// (path taken from the option or the CONFIG environment variable), then
// command line flags, then environment variables. The result is validated
// before being returned.
func New(optionsProto ...InitOption) (*Config, error) {
	options := &initOptions{}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("Unable to load .env file: %v", err)
	}

	values := &Config{}
	applyDefaults(values, defaultConfig)

	configFile := options.configFile
	if configFile == "" {
		configFile = os.Getenv("CONFIG")
	}
	if configFile != "" {
		if err := loadJSONConfig(configFile, values); err != nil {
			return nil, err
		}
		applyDefaults(values, defaultConfig)
	}

	if !options.disableFlagsParsing {
		flag.StringVar(&values.RunAddr, "a", values.RunAddr, "address and port to run server")
		flag.StringVar(&values.LogLevel, "l", values.LogLevel, "logger level")
		flag.StringVar(&values.DBFileName, "f", values.DBFileName, "JSON file name with database")
		flag.StringVar(&values.DatabaseDSN, "d", values.DatabaseDSN, "A string with the database connection details")
		flag.StringVar(&values.MigrationsDir, "m", values.MigrationsDir, "database migrations directory")
		flag.StringVar(&values.TrustedSubnet, "t", values.TrustedSubnet, "CIDR of the subnet trusted to query internal stats")
		flag.Parse()
	}

	var valuesFromEnv Config
	if err := env.Parse(&valuesFromEnv); err != nil {
		return nil, err
	}

	if valuesFromEnv.RunAddr != "" {
		values.RunAddr = valuesFromEnv.RunAddr
	}

	if valuesFromEnv.LogLevel != "" {
		values.LogLevel = valuesFromEnv.LogLevel
	}

	if valuesFromEnv.DBFileName != "" {
		values.DBFileName = valuesFromEnv.DBFileName
	}

	if valuesFromEnv.DatabaseDSN != "" {
		values.DatabaseDSN = valuesFromEnv.DatabaseDSN
	}

	if valuesFromEnv.DBConnectionTimeout != 0 {
		values.DBConnectionTimeout = valuesFromEnv.DBConnectionTimeout
	}

	if valuesFromEnv.MigrationsDir != "" {
		values.MigrationsDir = valuesFromEnv.MigrationsDir
	}

	if valuesFromEnv.AuthCookieName != "" {
		values.AuthCookieName = valuesFromEnv.AuthCookieName
	}

	if valuesFromEnv.AuthCookieSigningSecretKey != "" {
		values.AuthCookieSigningSecretKey = valuesFromEnv.AuthCookieSigningSecretKey
	}

	if valuesFromEnv.TrustedSubnet != "" {
		values.TrustedSubnet = valuesFromEnv.TrustedSubnet
	}

	if err := values.validate(); err != nil {
		return nil, err
	}

	return values, nil
}
