package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"

	NotifyWhatsApp = "whatsapp"
	NotifyNone     = "none"
)

// Config is the application configuration. Values come from the defaults,
// then the optional YAML file named by CONFIG_FILE, then the environment.
type Config struct {
	ServerPort         string        `yaml:"server_port"`
	KVBackend          string        `yaml:"kv_backend"`
	SQLitePath         string        `yaml:"sqlite_path"`
	DB                 DBSettings    `yaml:"db"`
	JWTSecret          string        `yaml:"jwt_secret_key"`
	JWTExpirationHours int64         `yaml:"jwt_expiration_hours"`
	OrderDelay         time.Duration `yaml:"order_delay"`
	NotifyMode         string        `yaml:"notify_mode"`
	BusinessName       string        `yaml:"business_name"`
	WhatsAppNumber     string        `yaml:"whatsapp_number"`
	LogLevel           string        `yaml:"log_level"`
	Timezone           string        `yaml:"timezone"`
}

// DBSettings are the Postgres connection parameters.
type DBSettings struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		ServerPort:         "8080",
		KVBackend:          BackendSQLite,
		SQLitePath:         "starpro.db",
		JWTExpirationHours: 24,
		OrderDelay:         1500 * time.Millisecond,
		NotifyMode:         NotifyWhatsApp,
		BusinessName:       "Star Pro Ice Cream",
		WhatsAppNumber:     "917904410087",
		LogLevel:           "info",
		Timezone:           "Asia/Kolkata",
	}
}

// Load builds the configuration from defaults, CONFIG_FILE and the environment.
func Load() (*Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	str(&c.ServerPort, "SERVER_PORT")
	str(&c.KVBackend, "KV_BACKEND")
	str(&c.SQLitePath, "SQLITE_PATH")
	str(&c.DB.Host, "DB_HOST")
	str(&c.DB.Port, "DB_PORT")
	str(&c.DB.User, "DB_USER")
	str(&c.DB.Password, "DB_PASSWORD")
	str(&c.DB.Name, "DB_NAME")
	str(&c.JWTSecret, "JWT_SECRET_KEY")
	str(&c.NotifyMode, "NOTIFY_MODE")
	str(&c.BusinessName, "BUSINESS_NAME")
	str(&c.WhatsAppNumber, "WHATSAPP_NUMBER")
	str(&c.LogLevel, "LOG_LEVEL")
	str(&c.Timezone, "TIMEZONE")

	if v := getenv("JWT_EXPIRATION_HOURS"); v != "" {
		hours, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid JWT_EXPIRATION_HOURS %q: %w", v, err)
		}
		c.JWTExpirationHours = hours
	}
	if v := getenv("ORDER_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid ORDER_DELAY %q: %w", v, err)
		}
		c.OrderDelay = d
	}
	return nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY not set")
	}
	if c.JWTExpirationHours <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be positive")
	}
	switch c.KVBackend {
	case BackendMemory, BackendSQLite, BackendPostgres:
	default:
		return fmt.Errorf("unknown KV_BACKEND %q", c.KVBackend)
	}
	switch c.NotifyMode {
	case NotifyWhatsApp, NotifyNone:
	default:
		return fmt.Errorf("unknown NOTIFY_MODE %q", c.NotifyMode)
	}
	if c.OrderDelay < 0 {
		return fmt.Errorf("ORDER_DELAY must not be negative")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone. An empty value means UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
