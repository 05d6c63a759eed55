package testutil

import (
	"testing"

	"github.com/lepinkainen/reelscout/internal/config"
	"github.com/spf13/viper"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	OverwriteFiles bool
	TMDBAPIKey     string
	ImageBaseURL   string
	CacheEnabled   bool
	ResultLimit    int
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		OverwriteFiles: config.OverwriteFiles,
		TMDBAPIKey:     config.TMDBAPIKey,
		ImageBaseURL:   config.ImageBaseURL,
		CacheEnabled:   config.CacheEnabled,
		ResultLimit:    config.ResultLimit,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.OverwriteFiles = state.OverwriteFiles
	config.TMDBAPIKey = state.TMDBAPIKey
	config.ImageBaseURL = state.ImageBaseURL
	config.CacheEnabled = state.CacheEnabled
	config.ResultLimit = state.ResultLimit
}

// SetTestConfigOption is a functional option for configuring test config.
type SetTestConfigOption func(*ConfigState)

// WithTMDBAPIKey sets the TMDB API key.
func WithTMDBAPIKey(key string) SetTestConfigOption {
	return func(o *ConfigState) {
		o.TMDBAPIKey = key
	}
}

// WithCacheEnabled toggles the persistent catalog cache.
func WithCacheEnabled(v bool) SetTestConfigOption {
	return func(o *ConfigState) {
		o.CacheEnabled = v
	}
}

// WithOverwriteFiles sets the OverwriteFiles option.
func WithOverwriteFiles(v bool) SetTestConfigOption {
	return func(o *ConfigState) {
		o.OverwriteFiles = v
	}
}

// SetTestConfig resets viper and applies test defaults to the config
// package. Everything is restored when the test completes.
func SetTestConfig(t *testing.T, opts ...SetTestConfigOption) {
	t.Helper()

	saved := SaveConfigState()
	viper.Reset()

	state := ConfigState{
		OverwriteFiles: true,
		TMDBAPIKey:     "test-tmdb-key",
		ImageBaseURL:   config.DefaultImageBaseURL,
		CacheEnabled:   false,
		ResultLimit:    config.DefaultResultLimit,
	}
	for _, opt := range opts {
		opt(&state)
	}
	RestoreConfigState(state)

	t.Cleanup(func() {
		RestoreConfigState(saved)
		viper.Reset()
	})
}

// SetViperValue sets a viper configuration value and schedules cleanup.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	viper.Set(key, value)

	t.Cleanup(func() {
		// viper has no Unset, so a previously unset key keeps the test value
		if hadValue {
			viper.Set(key, oldValue)
		}
	})
}

// SetupTestCache points the SQLite cache at a file inside env.
func SetupTestCache(t *testing.T, env *TestEnv) string {
	t.Helper()

	cacheDir := env.Path("cache")
	env.MkdirAll("cache")

	SetViperValue(t, "cache.dbfile", env.Path("cache", "test-cache.db"))
	SetViperValue(t, "cache.ttl", "24h")

	return cacheDir
}
