package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Host:             "http://localhost:11434",
		Model:            "qwen2.5:3b",
		Token:            "none",
		ExtractionPasses: 2,
		Timeout:          time.Minute,
		MaxRetries:       3,
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	assert.Equal(t, "qwen2.5:3b", cfg.Model)
	assert.Equal(t, 2, cfg.ExtractionPasses)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.MaxRetries)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
		assert.Equal(t, 2, cfg.ExtractionPasses)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithHost("http://custom:8080/v1"),
			WithModel("gpt-4o-mini"),
			WithToken("secret"),
			WithExtractionPasses(1),
			WithTimeout(5*time.Second),
			WithMaxRetries(5),
		)

		assert.Equal(t, "http://custom:8080/v1", cfg.Host)
		assert.Equal(t, "gpt-4o-mini", cfg.Model)
		assert.Equal(t, "secret", cfg.Token)
		assert.Equal(t, 1, cfg.ExtractionPasses)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, 5, cfg.MaxRetries)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		expected string
	}{
		{name: "already has /v1", host: "http://localhost:11434/v1", expected: "http://localhost:11434/v1"},
		{name: "missing /v1", host: "http://localhost:11434", expected: "http://localhost:11434/v1"},
		{name: "has trailing slash", host: "http://localhost:11434/", expected: "http://localhost:11434/v1"},
		{name: "empty host", host: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Host: tt.host}
			cfg.Normalize()
			assert.Equal(t, tt.expected, cfg.Host)
		})
	}

	t.Run("empty token gets placeholder", func(t *testing.T) {
		cfg := &Config{}
		cfg.Normalize()
		assert.Equal(t, "none", cfg.Token)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := validConfig()

		err := cfg.Validate()
		assert.NoError(t, err)

		// Should also normalize
		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	})

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "missing host", mutate: func(c *Config) { c.Host = "" }, field: "Host"},
		{name: "missing model", mutate: func(c *Config) { c.Model = "" }, field: "Model"},
		{name: "zero passes", mutate: func(c *Config) { c.ExtractionPasses = 0 }, field: "ExtractionPasses"},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }, field: "Timeout"},
		{name: "zero retries", mutate: func(c *Config) { c.MaxRetries = 0 }, field: "MaxRetries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestConfigValidate_Integration(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Validate())

	cfg = DefaultConfig()
	require.NoError(t, cfg.Validate())
}
