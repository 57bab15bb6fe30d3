package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Addr string
	}
	State struct {
		Path string
	}
	User    string
	Timeout time.Duration
	Editor  string
}

// Load reads config from environment (RECIPEWAY_ prefix) and optional
// recipeway.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RECIPEWAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("recipeway")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("state.path", defaultStatePath())
	v.SetDefault("timeout", "60s")
	v.SetDefault("editor", os.Getenv("EDITOR"))

	cfg := &Config{}
	cfg.Server.Addr = v.GetString("server.addr")
	cfg.State.Path = v.GetString("state.path")
	cfg.User = v.GetString("user")
	cfg.Editor = v.GetString("editor")
	if cfg.Editor == "" {
		cfg.Editor = "vi"
	}

	timeout, err := time.ParseDuration(v.GetString("timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECIPEWAY_TIMEOUT: %w", err)
	}
	cfg.Timeout = timeout

	if cfg.Server.Addr == "" {
		return nil, fmt.Errorf("RECIPEWAY_SERVER_ADDR is required")
	}
	if cfg.User == "" {
		return nil, fmt.Errorf("RECIPEWAY_USER is required (the viewer's email)")
	}

	return cfg, nil
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "recipeway.db"
	}
	return filepath.Join(dir, "recipeway", "state.db")
}
