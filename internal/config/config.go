// Package config resolves runtime settings from a YAML file, DRILL_*
// environment variables and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/abhisek/drill/internal/store"
)

// EnvPrefix marks environment variables read as configuration.
const EnvPrefix = "DRILL_"

// Config holds the resolved settings.
type Config struct {
	DB        string `koanf:"db"`
	LogLevel  string `koanf:"log-level" validate:"oneof=debug info warn error"`
	LogFormat string `koanf:"log-format" validate:"oneof=text json"`
	LogFile   string `koanf:"log-file"`
	TUI       bool   `koanf:"tui"`
	NoClear   bool   `koanf:"no-clear"`
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to a YAML config file (default $XDG_CONFIG_HOME/drill/config.yaml)")
	fs.String("db", "", "Path to SQLite database file (default $XDG_DATA_HOME/drill/drill.db)")
	fs.String("log-level", "warn", "Log level: debug, info, warn or error")
	fs.String("log-format", "text", "Log format: text or json")
	fs.String("log-file", "", "Write logs to this file, rotated by size, instead of stderr")
	fs.Bool("tui", false, "Read answers through the interactive text prompt")
	fs.Bool("no-clear", false, "Do not clear the screen between questions")
}

// Load layers the config file, environment and flags, validates the
// result and resolves the database path.
func Load(flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	path, explicit := configPath(flags)
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return Config{}, fmt.Errorf("load flags: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.resolveDB(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) resolveDB() error {
	if c.DB == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		c.DB = p
		return nil
	}
	if err := store.EnsureDir(c.DB); err != nil {
		return fmt.Errorf("create DB directory: %w", err)
	}
	return nil
}

// configPath returns the file to load and whether the user named it.
func configPath(flags *pflag.FlagSet) (string, bool) {
	if flags.Lookup("config") != nil {
		if p, _ := flags.GetString("config"); p != "" {
			return p, true
		}
	}
	if p := os.Getenv(EnvPrefix + "CONFIG"); p != "" {
		return p, true
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "drill", "config.yaml"), false
}

// envKey maps DRILL_LOG_LEVEL to log-level.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", "-")
}
