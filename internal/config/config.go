// Package config loads server settings from an optional YAML file with
// environment overrides. A .env file in the working directory is read
// first so local setups can keep connection strings out of the shell.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr        string `yaml:"addr"`
	DataDir     string `yaml:"data_dir"`
	LogLevel    string `yaml:"log_level"`
	RedisURL    string `yaml:"redis_url"`
	DatabaseURL string `yaml:"database_url"`
	PregenDepth int    `yaml:"pregen_depth"`
}

func Default() Config {
	return Config{
		Addr:        ":8080",
		DataDir:     "data",
		LogLevel:    "info",
		PregenDepth: 4,
	}
}

// Load builds the config in three layers: defaults, then the YAML file
// at path (skipped when path is empty or missing), then environment
// variables. Later layers win.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SUDOGEN_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("SUDOGEN_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("SUDOGEN_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.RedisURL = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("SUDOGEN_PREGEN_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.PregenDepth = n
		}
	}
}
