package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	t.Setenv("ADSIGHT_ENV", Test)

	c := GetConfig()
	require.NotNil(t, c)
	assert.Equal(t, "adsight", c.AppName)
	assert.True(t, c.IsTest())
	assert.Equal(t, "₹", c.GetCurrencySymbol())
	assert.Equal(t, 4, c.GetTrendWorkers())
	assert.Equal(t, 25, c.GetGridPageSize())
	assert.Equal(t, 10, c.GetBusinessPageSize())
	assert.Equal(t, "storage/adsight-test.db", c.DatabaseDSN())
	assert.Equal(t, 1, c.GetMaxOpenConns())
	assert.Same(t, c, GetConfig())
}

func TestGetConfigFromEnvironment(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	t.Setenv("ADSIGHT_ENV", Development)
	t.Setenv("ADSIGHT_CURRENCY_SYMBOL", "$")
	t.Setenv("ADSIGHT_TREND_WORKERS", "8")
	t.Setenv("ADSIGHT_GRID_PAGE_SIZE", "50")
	t.Setenv("ADSIGHT_BUSINESS_PAGE_SIZE", "-1")
	t.Setenv("ADSIGHT_STORAGE_PATH", "/tmp/adsight")

	c := GetConfig()
	assert.Equal(t, "$", c.GetCurrencySymbol())
	assert.Equal(t, 8, c.GetTrendWorkers())
	assert.Equal(t, 50, c.GetGridPageSize())
	assert.Equal(t, -1, c.GetBusinessPageSize())
	assert.Equal(t, "/tmp/adsight/adsight-development.db", c.GetDatabasePath())
	assert.Equal(t, 10, c.GetMaxOpenConns())
	assert.Equal(t, 5, c.GetMaxIdleConns())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Environment: Test, DatabaseType: SQLiteDatabase, DatabasePath: "storage"}, false},
		{"unknown environment", Config{Environment: "staging", DatabaseType: SQLiteDatabase, DatabasePath: "storage"}, true},
		{"unknown database", Config{Environment: Test, DatabaseType: "postgres", DatabasePath: "storage"}, true},
		{"empty database path", Config{Environment: Test, DatabaseType: SQLiteDatabase, DatabasePath: " "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, DefaultTrendWorkers, tt.cfg.TrendWorkers)
			assert.Equal(t, DefaultCurrencySymbol, tt.cfg.CurrencySymbol)
		})
	}
}
