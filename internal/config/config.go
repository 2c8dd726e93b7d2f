// Package config provides configuration management using Viper
package config

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Environment types
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// LogLevel represents the logging level for the application
type LogLevel string

// Available log levels
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Database types
const (
	SQLiteDatabase = "sqlite"
)

// Domain defaults
const (
	DefaultCurrencySymbol   = "₹"
	DefaultTrendWorkers     = 4
	DefaultGridPageSize     = 25
	DefaultBusinessPageSize = 10
)

// Config holds all configuration parameters for the application
type Config struct {
	// Application settings
	AppName     string   `mapstructure:"appname"`
	AppPort     string   `mapstructure:"appport"`
	Environment string   `mapstructure:"environment"`
	LogLevel    LogLevel `mapstructure:"loglevel"`
	PrivateKey  string   `mapstructure:"privatekey"`

	// File paths
	DatabasePath          string `mapstructure:"storagepath"`
	DatabaseName          string `mapstructure:"-"` // Derived from other settings
	PublicDirectory       string `mapstructure:"publicdir"`
	PublicAssetsUrlPrefix string `mapstructure:"publicassetsurlprefix"`

	// Logging settings
	LogsDirectory    string `mapstructure:"logsdir"`
	LogsMaxSizeInMb  int    `mapstructure:"logsmaxsizeinmb"`
	LogsMaxBackups   int    `mapstructure:"logsmaxbackups"`
	LogsMaxAgeInDays int    `mapstructure:"logsmaxageindays"`

	// Database settings
	DatabaseType         string `mapstructure:"dbtype"`
	DatabaseMaxOpenConns int    `mapstructure:"dbmaxopenconns"`
	DatabaseMaxIdleConns int    `mapstructure:"dbmaxidleconns"`

	// Report settings
	CurrencySymbol   string `mapstructure:"currencysymbol"`
	TrendWorkers     int    `mapstructure:"trendworkers"`
	GridPageSize     int    `mapstructure:"gridpagesize"`
	BusinessPageSize int    `mapstructure:"businesspagesize"`
	MetricsEnabled   bool   `mapstructure:"metricsenabled"`
	MetricsToken     string `mapstructure:"metricstoken"`
}

var (
	cfg  *Config
	once sync.Once
)

// GetConfig returns the application configuration
func GetConfig() *Config {
	once.Do(func() {
		v := viper.New()

		v.SetDefault("appname", "adsight")
		v.SetDefault("appport", "3000")
		v.SetDefault("environment", Development)
		v.SetDefault("loglevel", string(LogLevelDebug))
		v.SetDefault("privatekey", "88888888888888888888888888888888")
		v.SetDefault("storagepath", "storage")
		v.SetDefault("publicdir", "web/dist/assets")
		v.SetDefault("publicassetsurlprefix", "/")
		v.SetDefault("logsdir", "logs")
		v.SetDefault("logsmaxsizeinmb", 20)
		v.SetDefault("logsmaxbackups", 10)
		v.SetDefault("logsmaxageindays", 30)
		v.SetDefault("dbtype", SQLiteDatabase)
		v.SetDefault("dbmaxopenconns", 0)
		v.SetDefault("dbmaxidleconns", 0)
		v.SetDefault("currencysymbol", DefaultCurrencySymbol)
		v.SetDefault("trendworkers", DefaultTrendWorkers)
		v.SetDefault("gridpagesize", DefaultGridPageSize)
		v.SetDefault("businesspagesize", DefaultBusinessPageSize)
		v.SetDefault("metricsenabled", true)
		v.SetDefault("metricstoken", "")

		v.BindEnv("appname", "ADSIGHT_APP_NAME")
		v.BindEnv("appport", "ADSIGHT_APP_PORT")
		v.BindEnv("environment", "ADSIGHT_ENV")
		v.BindEnv("loglevel", "ADSIGHT_LOG_LEVEL")
		v.BindEnv("privatekey", "ADSIGHT_PRIVATE_KEY")
		v.BindEnv("storagepath", "ADSIGHT_STORAGE_PATH")
		v.BindEnv("publicdir", "ADSIGHT_PUBLIC_DIR")
		v.BindEnv("publicassetsurlprefix", "ADSIGHT_PUBLIC_ASSETS_URL_PREFIX")
		v.BindEnv("logsdir", "ADSIGHT_LOGS_DIR")
		v.BindEnv("logsmaxsizeinmb", "ADSIGHT_LOGS_MAX_SIZE_IN_MB")
		v.BindEnv("logsmaxbackups", "ADSIGHT_LOGS_MAX_BACKUPS")
		v.BindEnv("logsmaxageindays", "ADSIGHT_LOGS_MAX_AGE_IN_DAYS")
		v.BindEnv("dbtype", "ADSIGHT_DB_TYPE")
		v.BindEnv("dbmaxopenconns", "ADSIGHT_DB_MAX_OPEN_CONNS")
		v.BindEnv("dbmaxidleconns", "ADSIGHT_DB_MAX_IDLE_CONNS")
		v.BindEnv("currencysymbol", "ADSIGHT_CURRENCY_SYMBOL")
		v.BindEnv("trendworkers", "ADSIGHT_TREND_WORKERS")
		v.BindEnv("gridpagesize", "ADSIGHT_GRID_PAGE_SIZE")
		v.BindEnv("businesspagesize", "ADSIGHT_BUSINESS_PAGE_SIZE")
		v.BindEnv("metricsenabled", "ADSIGHT_METRICS_ENABLED")
		v.BindEnv("metricstoken", "ADSIGHT_METRICS_TOKEN")

		cfg = &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			log.Fatalf("config: failed to unmarshal configuration: %v", err)
		}

		if err := cfg.validate(); err != nil {
			log.Fatalf("config: invalid configuration: %v", err)
		}

		cfg.DatabaseName = cfg.GetDatabasePath()

		if cfg.PrivateKey == "" {
			log.Fatal("Private key is required")
		}
	})
	return cfg
}

// validate checks the configuration for errors
func (c *Config) validate() error {
	validEnvs := map[string]bool{
		Development: true,
		Production:  true,
		Test:        true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	validDBTypes := map[string]bool{
		SQLiteDatabase: true,
	}
	if !validDBTypes[c.DatabaseType] {
		return fmt.Errorf("invalid database type: %s", c.DatabaseType)
	}

	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("database storage path is required (ADSIGHT_STORAGE_PATH)")
	}

	if c.TrendWorkers < 1 {
		c.TrendWorkers = DefaultTrendWorkers
	}
	if c.GridPageSize == 0 {
		c.GridPageSize = DefaultGridPageSize
	}
	if c.BusinessPageSize == 0 {
		c.BusinessPageSize = DefaultBusinessPageSize
	}
	if c.CurrencySymbol == "" {
		c.CurrencySymbol = DefaultCurrencySymbol
	}

	return nil
}

// GetDatabasePath returns the appropriate database path based on environment
func (c *Config) GetDatabasePath() string {
	if c.DatabaseName == "" {
		c.DatabaseName = filepath.Join(c.DatabasePath,
			fmt.Sprintf("%s-%s.db", c.AppName, c.Environment))
	}
	return c.DatabaseName
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// IsTest returns true if the environment is test
func (c *Config) IsTest() bool {
	return c.Environment == Test
}

// GetPort returns the HTTP server port (implements cartridge.Config interface).
func (c *Config) GetPort() string {
	return c.AppPort
}

// GetPublicDirectory returns the path to public/static assets (implements cartridge.Config interface).
func (c *Config) GetPublicDirectory() string {
	return c.PublicDirectory
}

// GetAssetsPrefix returns the URL prefix for static assets (implements cartridge.Config interface).
func (c *Config) GetAssetsPrefix() string {
	return c.PublicAssetsUrlPrefix
}

// GetAppName returns the application name (implements cartridge.FactoryConfig interface).
func (c *Config) GetAppName() string {
	return c.AppName
}

// DatabaseDSN returns the database connection string (implements cartridge.FactoryConfig interface).
func (c *Config) DatabaseDSN() string {
	return c.GetDatabasePath()
}

// GetSessionSecret returns the session encryption key (implements cartridge.FactoryConfig interface).
func (c *Config) GetSessionSecret() string {
	return c.PrivateKey
}

// GetMaxOpenConns returns MaxOpenConns: the explicit setting, 1 in test,
// 10 otherwise so trend lookups can read in parallel.
func (c *Config) GetMaxOpenConns() int {
	if c.DatabaseMaxOpenConns > 0 {
		return c.DatabaseMaxOpenConns
	}

	if c.Environment == Test {
		return 1
	}

	return 10
}

// GetMaxIdleConns returns MaxIdleConns: the explicit setting, 1 in test, 5
// otherwise.
func (c *Config) GetMaxIdleConns() int {
	if c.DatabaseMaxIdleConns > 0 {
		return c.DatabaseMaxIdleConns
	}

	if c.Environment == Test {
		return 1
	}

	return 5
}

// GetLogLevel returns the log level as a string (implements cartridge.LogConfigProvider).
func (c *Config) GetLogLevel() string {
	return string(c.LogLevel)
}

// GetLogDirectory returns the logs directory (implements cartridge.LogConfigProvider).
func (c *Config) GetLogDirectory() string {
	return c.LogsDirectory
}

// GetLogMaxSizeMB returns the max log file size in MB (implements cartridge.LogConfigProvider).
func (c *Config) GetLogMaxSizeMB() int {
	return c.LogsMaxSizeInMb
}

// GetLogMaxBackups returns the max number of log backups (implements cartridge.LogConfigProvider).
func (c *Config) GetLogMaxBackups() int {
	return c.LogsMaxBackups
}

// GetLogMaxAgeDays returns the max age in days for log files (implements cartridge.LogConfigProvider).
func (c *Config) GetLogMaxAgeDays() int {
	return c.LogsMaxAgeInDays
}

// GetCurrencySymbol returns the symbol prefixed to currency cells.
func (c *Config) GetCurrencySymbol() string {
	if c.CurrencySymbol == "" {
		return DefaultCurrencySymbol
	}
	return c.CurrencySymbol
}

// GetTrendWorkers returns the number of concurrent business sales lookups.
func (c *Config) GetTrendWorkers() int {
	if c.TrendWorkers < 1 {
		return DefaultTrendWorkers
	}
	return c.TrendWorkers
}

// GetGridPageSize returns the default page length of the ads grids.
func (c *Config) GetGridPageSize() int {
	if c.GridPageSize == 0 {
		return DefaultGridPageSize
	}
	return c.GridPageSize
}

// GetBusinessPageSize returns the default page length of the products grid.
func (c *Config) GetBusinessPageSize() int {
	if c.BusinessPageSize == 0 {
		return DefaultBusinessPageSize
	}
	return c.BusinessPageSize
}

// Reset clears the cached configuration; intended for tests.
func Reset() {
	once = sync.Once{}
	cfg = nil
}
