package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SPOONACULAR_API_KEY", "spoon-key")
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, "spoon-key", cfg.Spoonacular.APIKey)
	assert.Equal(t, "gemini-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "https://api.spoonacular.com", cfg.Spoonacular.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadOverridesFromEnvironment(t *testing.T) {
	t.Setenv("SPOONACULAR_API_KEY", "spoon-key")
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("APP_PORT", "8081")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SERVER_READ_TIMEOUT", "5s")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.Model)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
}

func TestLoadRequiresCredentials(t *testing.T) {
	tests := []struct {
		name     string
		spoon    string
		gemini   string
		expected error
	}{
		{name: "missing spoonacular", spoon: "", gemini: "g", expected: ErrMissingSpoonacularKey},
		{name: "missing gemini", spoon: "s", gemini: "", expected: ErrMissingGeminiKey},
		{name: "blank spoonacular", spoon: "   ", gemini: "g", expected: ErrMissingSpoonacularKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SPOONACULAR_API_KEY", tt.spoon)
			t.Setenv("GEMINI_API_KEY", tt.gemini)

			cfg, err := Load(viper.New())
			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("SPOONACULAR_API_KEY", "s")
	t.Setenv("GEMINI_API_KEY", "g")
	t.Setenv("APP_PORT", "70000")

	_, err := Load(viper.New())
	assert.Error(t, err)
}
