package config

import (
	"colorclash-server/internal/util"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the Color Clash server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	SQLitePath     string `yaml:"sqlitePath" envconfig:"sqlite_path"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	JWT            struct {
		Secret   string `yaml:"secret"`
		TTLHours int    `yaml:"ttlHours" envconfig:"ttl_hours"`
	} `yaml:"jwt"`
	RecaptchaSecret string `yaml:"recaptchaSecret" envconfig:"recaptcha_secret"`
	Log             struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	Room struct {
		MaxPlayers       int    `yaml:"maxPlayers" envconfig:"max_players"`
		DefaultGameMode  string `yaml:"defaultGameMode" envconfig:"default_game_mode"`
		DefaultTurnTimer int    `yaml:"defaultTurnTimer" envconfig:"default_turn_timer"`
	} `yaml:"room"`
}

var config Config

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() Config {
	var c Config
	c.SQLitePath = "colorclash.db"
	c.MigrationsPath = "./sql"
	c.JWT.Secret = "dev-secret-change-me"
	c.JWT.TTLHours = 24 * 7
	c.Log.Level = "info"
	c.Room.MaxPlayers = 6
	c.Room.DefaultGameMode = "classic"

	return c
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// The YAML file is optional, environment variables prefixed with CLASH_ take precedence
func Load() error {
	c := DefaultConfig()

	configFile := util.Getenv("CLASH_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&c); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("clash", &c); err != nil {
		return err
	}

	c.loaded = true
	config = c
	return nil
}
