package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gfdtools/gfdfile/errors"
	"github.com/gfdtools/gfdfile/gfd"
	"github.com/spf13/viper"
)

// Config holds the settings of gfdtool, read from gfdtool.toml, GFDTOOL_
// environment variables, and flags.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Decode DecodeConfig `mapstructure:"decode"`
	Pack   PackConfig   `mapstructure:"pack"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DecodeConfig struct {
	Strict      bool `mapstructure:"strict"`
	SkipUnknown bool `mapstructure:"skip_unknown"`
	MaxDepth    int  `mapstructure:"max_depth"`
}

type PackConfig struct {
	Compress bool `mapstructure:"compress"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("log.level", "info")
	v.SetDefault("decode.strict", false)
	v.SetDefault("decode.skip_unknown", false)
	v.SetDefault("decode.max_depth", gfd.DefaultMaxDepth)
	v.SetDefault("pack.compress", true)

	v.SetEnvPrefix("GFDTOOL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig reads the configuration into v. If path is empty, gfdtool.toml
// is looked for in the working directory, and its absence is not an error.
func loadConfig(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("gfdtool")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	if cfg.Decode.MaxDepth < 0 {
		return nil, fmt.Errorf("decode.max_depth must not be negative, got %d", cfg.Decode.MaxDepth)
	}
	return &cfg, nil
}

func (cfg *Config) Logger() *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "gfdtool",
	})
	level, _ := log.ParseLevel(cfg.Log.Level)
	l.SetLevel(level)
	return l
}

// Decoder returns a decoder configured by cfg. Resources are traced to l at
// the debug level.
func (cfg *Config) Decoder(l *log.Logger) gfd.Decoder {
	return gfd.Decoder{
		Strict:      cfg.Decode.Strict,
		SkipUnknown: cfg.Decode.SkipUnknown,
		MaxDepth:    cfg.Decode.MaxDepth,
		Logger:      l,
	}
}
