// Package config provides Viper-based configuration loading for taleweaver.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is a zap sink ("stderr", "stdout" or a file path). The play
	// loop owns stdout, so the default is stderr.
	Output string `mapstructure:"output"`
}

// DiceConfig selects the randomness source.
type DiceConfig struct {
	// Source is "crypto" (default) or "seeded".
	Source string `mapstructure:"source"`
	// Seed is used only when Source is "seeded".
	Seed int64 `mapstructure:"seed"`
}

// AdventureConfig holds turn-loop settings.
type AdventureConfig struct {
	// MaxTurns is the hard cap on adventure length.
	MaxTurns int `mapstructure:"max_turns"`
	// DefaultEnemy is used when "fight" names an unknown or no enemy.
	DefaultEnemy string `mapstructure:"default_enemy"`
}

// ContentConfig points at optional data directories.
type ContentConfig struct {
	// EnemiesDir holds extra enemy template YAML files; empty means built-ins only.
	EnemiesDir string `mapstructure:"enemies_dir"`
	// QuestFile is an optional quest YAML file; empty means the starter quest.
	QuestFile string `mapstructure:"quest_file"`
}

// NarratorConfig selects and configures the narrator.
type NarratorConfig struct {
	// Provider is "static" or "anthropic".
	Provider  string `mapstructure:"provider"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
	// APIKey is normally supplied through TALEWEAVER_NARRATOR_API_KEY.
	APIKey string `mapstructure:"api_key"`
	// BaseURL overrides the provider endpoint; empty uses the SDK default.
	BaseURL string `mapstructure:"base_url"`
}

// Config is the top-level application configuration. It is loaded once at
// startup and passed by value.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Dice      DiceConfig      `mapstructure:"dice"`
	Adventure AdventureConfig `mapstructure:"adventure"`
	Content   ContentConfig   `mapstructure:"content"`
	Narrator  NarratorConfig  `mapstructure:"narrator"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateDice(c.Dice); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateAdventure(c.Adventure); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateNarrator(c.Narrator); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	if l.Output == "" {
		return errors.New("logging.output must not be empty")
	}
	return nil
}

func validateDice(d DiceConfig) error {
	if d.Source != "crypto" && d.Source != "seeded" {
		return fmt.Errorf("dice.source must be one of [crypto, seeded], got %q", d.Source)
	}
	return nil
}

func validateAdventure(a AdventureConfig) error {
	var errs []string
	if a.MaxTurns < 1 {
		errs = append(errs, fmt.Sprintf("adventure.max_turns must be >= 1, got %d", a.MaxTurns))
	}
	if strings.TrimSpace(a.DefaultEnemy) == "" {
		errs = append(errs, "adventure.default_enemy must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateNarrator(n NarratorConfig) error {
	switch n.Provider {
	case "static":
		return nil
	case "anthropic":
		var errs []string
		if n.Model == "" {
			errs = append(errs, "narrator.model must not be empty")
		}
		if n.MaxTokens < 1 {
			errs = append(errs, fmt.Sprintf("narrator.max_tokens must be >= 1, got %d", n.MaxTokens))
		}
		if n.APIKey == "" {
			errs = append(errs, "narrator.api_key must not be empty for the anthropic provider")
		}
		if len(errs) > 0 {
			return fmt.Errorf("%s", strings.Join(errs, "; "))
		}
		return nil
	default:
		return fmt.Errorf("narrator.provider must be one of [static, anthropic], got %q", n.Provider)
	}
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file and uses
// defaults plus environment overrides.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with TALEWEAVER_ prefix
	v.SetEnvPrefix("TALEWEAVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns the configuration used when no file or environment
// overrides are present.
func Defaults() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults are static and always decode.
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("dice.source", "crypto")
	v.SetDefault("dice.seed", 0)

	v.SetDefault("adventure.max_turns", 50)
	v.SetDefault("adventure.default_enemy", "goblin")

	v.SetDefault("content.enemies_dir", "")
	v.SetDefault("content.quest_file", "")

	v.SetDefault("narrator.provider", "static")
	v.SetDefault("narrator.model", "claude-sonnet-4-5")
	v.SetDefault("narrator.max_tokens", 512)
	v.SetDefault("narrator.api_key", "")
	v.SetDefault("narrator.base_url", "")
}
