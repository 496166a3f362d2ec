package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the full application configuration. Values come from the
// config file, MATHCLI_* environment variables and command-line flags, in
// increasing order of precedence.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Reduce ReduceConfig `mapstructure:"reduce" yaml:"reduce"`
}

// LoggerConfig controls the diagnostic stream. Diagnostics go to stderr or
// a rotated log file, never to the result stream on stdout.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// ReduceConfig carries file/env defaults for the reduction flags. Flags
// given on the command line override these through viper's flag binding.
type ReduceConfig struct {
	Ignore       int  `mapstructure:"ignore" yaml:"ignore"`
	Silent       bool `mapstructure:"silent" yaml:"silent"`
	IdentitySeed bool `mapstructure:"identity_seed" yaml:"identity_seed"`
}

// SetDefaults initializes default values on the given viper instance.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	// Matches the flag default of zero -v occurrences: errors only.
	v.SetDefault("logger.level", "error")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "mathcli")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", false)

	// -- Reduce --
	v.SetDefault("reduce.ignore", 0)
	v.SetDefault("reduce.silent", false)
	v.SetDefault("reduce.identity_seed", false)
}

// NewDefaultConfig returns a Config populated with the defaults above.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Cannot happen with the static defaults above.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// Validate checks the configuration for values no run could honor.
func (c *Config) Validate() error {
	if c.Reduce.Ignore < 0 {
		return fmt.Errorf("reduce.ignore must be non-negative, got %d", c.Reduce.Ignore)
	}
	switch c.Logger.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logger.format must be %q or %q, got %q", "console", "json", c.Logger.Format)
	}
	return nil
}
