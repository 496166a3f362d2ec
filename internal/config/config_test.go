package config

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Constructor and Defaults Tests --

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "error", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "mathcli", cfg.Logger.ServiceName)
	assert.Equal(t, 0, cfg.Reduce.Ignore)
	assert.False(t, cfg.Reduce.Silent)
	assert.False(t, cfg.Reduce.IdentitySeed)
}

// -- Validation Logic Tests --

func TestConfigValidation(t *testing.T) {
	t.Run("valid defaults", func(t *testing.T) {
		cfg := NewDefaultConfig()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("negative ignore", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.Reduce.Ignore = -1
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "reduce.ignore must be non-negative")
	})

	t.Run("unknown logger format", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.Logger.Format = "xml"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "logger.format")
	})
}

// -- File Loading Tests --

func TestConfigFromYAML(t *testing.T) {
	yaml := []byte(`
logger:
  level: debug
  format: json
reduce:
  ignore: 3
  silent: true
  identity_seed: true
`)

	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewReader(yaml)))

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, 3, cfg.Reduce.Ignore)
	assert.True(t, cfg.Reduce.Silent)
	assert.True(t, cfg.Reduce.IdentitySeed)
	// Untouched keys keep their defaults.
	assert.Equal(t, "mathcli", cfg.Logger.ServiceName)
}
