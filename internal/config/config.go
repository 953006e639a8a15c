// Package config handles tool configuration loading using viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level fieldpack configuration. Maps to the `fieldpack:`
// root key in YAML; env vars use the FIELDPACK_ prefix (e.g. FIELDPACK_LOG_LEVEL).
type Config struct {
	Log  LogConfig  `mapstructure:"log"`
	Dump DumpConfig `mapstructure:"dump"`
}

// LogConfig controls the global logger.
type LogConfig struct {
	Level  string           `mapstructure:"level"`  // debug | info | warn | error
	Format string           `mapstructure:"format"` // text | json
	File   FileOutputConfig `mapstructure:"file"`
}

// FileOutputConfig adds a rotating log file next to stderr output.
type FileOutputConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Path     string         `mapstructure:"path"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig maps straight onto lumberjack knobs.
type RotationConfig struct {
	MaxSizeMB  int  `mapstructure:"max_size_mb"`
	MaxAgeDays int  `mapstructure:"max_age_days"`
	MaxBackups int  `mapstructure:"max_backups"`
	Compress   bool `mapstructure:"compress"`
}

// DumpConfig carries defaults for the dump/pcap commands; flags override.
type DumpConfig struct {
	// ByteOrder is the default scalar byte order: big | little.
	ByteOrder string `mapstructure:"byte_order"`
	// Format is the default output format: text | yaml.
	Format string `mapstructure:"format"`
	// Options holds per-layout parameter maps keyed by layout name,
	// e.g. dump.options.rtp.csrc_count: 2.
	Options map[string]map[string]any `mapstructure:"options"`
}

// configRoot matches the YAML structure `fieldpack: ...`.
type configRoot struct {
	Fieldpack Config `mapstructure:"fieldpack"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var root configRoot
	// Defaults always decode; any failure here is a programming error.
	if err := v.Unmarshal(&root); err != nil {
		panic(fmt.Sprintf("config: defaults do not decode: %v", err))
	}
	return &root.Fieldpack
}

// Load loads configuration from path, layering env vars and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// "fieldpack.log.level" → FIELDPACK_LOG_LEVEL
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var root configRoot
	if err := v.Unmarshal(&root); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg := root.Fieldpack

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate rejects values the rest of the tool would trip over later.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q: must be text or json", c.Log.Format)
	}
	switch strings.ToLower(c.Dump.ByteOrder) {
	case "big", "little":
	default:
		return fmt.Errorf("dump.byte_order %q: must be big or little", c.Dump.ByteOrder)
	}
	switch strings.ToLower(c.Dump.Format) {
	case "text", "yaml":
	default:
		return fmt.Errorf("dump.format %q: must be text or yaml", c.Dump.Format)
	}
	if c.Log.File.Enabled && c.Log.File.Path == "" {
		return fmt.Errorf("log.file.enabled requires log.file.path")
	}
	return nil
}

// LayoutOptions returns the configured parameter map for a layout, never nil.
func (c *Config) LayoutOptions(layout string) map[string]any {
	if opts, ok := c.Dump.Options[layout]; ok {
		return opts
	}
	return map[string]any{}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("fieldpack.log.level", "info")
	v.SetDefault("fieldpack.log.format", "text")
	v.SetDefault("fieldpack.log.file.enabled", false)
	v.SetDefault("fieldpack.log.file.path", "")
	v.SetDefault("fieldpack.log.file.rotation.max_size_mb", 100)
	v.SetDefault("fieldpack.log.file.rotation.max_age_days", 30)
	v.SetDefault("fieldpack.log.file.rotation.max_backups", 5)
	v.SetDefault("fieldpack.log.file.rotation.compress", true)

	v.SetDefault("fieldpack.dump.byte_order", "big")
	v.SetDefault("fieldpack.dump.format", "text")
}
