package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the demo's configuration.
type Config struct {
	Window  WindowConfig
	Theme   ThemeConfig
	Backend string
	Tick    time.Duration
	Frames  int
	Log     LogConfig
	Debug   DebugConfig
}

type WindowConfig struct {
	Title  string
	X      int32
	Y      int32
	Width  uint32
	Height uint32
}

// ThemeConfig points at an optional YAML theme. Empty uses the built-in theme.
type ThemeConfig struct {
	Path string
}

type LogConfig struct {
	Level string
}

type DebugConfig struct {
	Inspector bool
}

// LoadConfig reads ooui.yaml from the working directory or from the file named
// by OOUI_CONFIG. Env var overrides use prefix OOUI_.
func LoadConfig() (Config, error) {
	v := viper.New()

	v.SetDefault("window.title", "ooui")
	v.SetDefault("window.x", 100)
	v.SetDefault("window.y", 100)
	v.SetDefault("window.width", 640)
	v.SetDefault("window.height", 480)
	v.SetDefault("theme.path", "")
	v.SetDefault("backend", "term")
	v.SetDefault("tick", 500*time.Millisecond)
	v.SetDefault("frames", 3)
	v.SetDefault("log.level", "info")
	v.SetDefault("debug.inspector", false)

	v.SetConfigType("yaml")

	cfgPath := os.Getenv("OOUI_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("ooui")
	}

	v.SetEnvPrefix("OOUI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	switch c.Backend {
	case "headless", "term", "ebiten":
	default:
		return Config{}, fmt.Errorf("unknown backend %q", c.Backend)
	}
	return c, nil
}

// LogLevel parses the configured level, defaulting to info.
func (c Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
