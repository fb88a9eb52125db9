package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config drives the demo binary. Every key can be overridden with a
// FORMCHECK_ environment variable, nested keys joined by "_"
// (FORMCHECK_LOG_LEVEL).
type Config struct {
	Demo      string `mapstructure:"demo"`
	Mode      string `mapstructure:"mode"`
	Locale    string `mapstructure:"locale"`
	Output    string `mapstructure:"output"`
	Format    string `mapstructure:"format"`
	MaxRounds int    `mapstructure:"max_rounds"`

	Log   LogConfig   `mapstructure:"log"`
	Theme ThemeConfig `mapstructure:"theme"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// ThemeConfig selects the theme used for feedback colours and HTML CSS
// variables. Tokens form an inline manifest named "formcheck"; Dir holds one
// go-theme manifest (theme.yaml, manifest.json, ...) per subdirectory.
type ThemeConfig struct {
	Name    string            `mapstructure:"name"`
	Variant string            `mapstructure:"variant"`
	Tokens  map[string]string `mapstructure:"tokens"`
	Dir     string            `mapstructure:"dir"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("demo", "basic")
	v.SetDefault("mode", "tui")
	v.SetDefault("locale", "en")
	v.SetDefault("format", "pretty")
	v.SetDefault("max_rounds", 5)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.development", false)
	v.SetDefault("theme.name", "formcheck")
	v.SetDefault("theme.variant", "")
	v.SetDefault("theme.dir", "")
	v.SetDefault("theme.tokens", map[string]string{"message": "#b00020"})
}

// InitConfig reads configFile when it is set and layers environment
// overrides on top of the defaults.
func InitConfig[C any](configFile string) (*C, error) {
	v := viper.New()
	defaults(v)
	v.SetEnvPrefix("FORMCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType(strings.TrimLeft(filepath.Ext(configFile), "."))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("v.ReadInConfig: %w", err)
		}
	}

	cfg := new(C)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg LogConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}
	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = level
	return zcfg.Build()
}
