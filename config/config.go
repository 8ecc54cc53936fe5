package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported values of Database.Driver
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Supported values of Cache.Type
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Security SecurityConfig `yaml:"security"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	BaseURL         string        `yaml:"base_url"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver        string `yaml:"driver"`
	DSN           string `yaml:"dsn"`
	MigrationsDir string `yaml:"migrations_dir"`
	AutoMigrate   bool   `yaml:"auto_migrate"`
}

type CacheConfig struct {
	Type          string        `yaml:"type"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	TTL           time.Duration `yaml:"ttl"`
}

type SecurityConfig struct {
	BcryptCost int `yaml:"bcrypt_cost"`
}

// Default returns a configuration that runs a local SQLite-backed server
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			BaseURL:         "http://localhost:8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:        DriverSQLite,
			DSN:           "./todo_service.db?_foreign_keys=on",
			MigrationsDir: "./database/migrations/sqlite",
			AutoMigrate:   true,
		},
		Cache: CacheConfig{
			Type:      CacheNone,
			RedisAddr: "localhost:6379",
			TTL:       10 * time.Minute,
		},
		Security: SecurityConfig{
			BcryptCost: 12,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment (a .env file in the working directory is loaded first).
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Addr = getString("APP_ADDR", c.Server.Addr)
	c.Server.BaseURL = getString("APP_BASE_URL", c.Server.BaseURL)
	c.Database.Driver = getString("DB_DRIVER", c.Database.Driver)
	c.Database.DSN = getString("DB_DSN", c.Database.DSN)
	c.Database.MigrationsDir = getString("DB_MIGRATIONS_DIR", c.Database.MigrationsDir)
	c.Cache.Type = getString("CACHE_TYPE", c.Cache.Type)
	c.Cache.RedisAddr = getString("REDIS_ADDR", c.Cache.RedisAddr)
	c.Cache.RedisPassword = getString("REDIS_PASSWORD", c.Cache.RedisPassword)
	c.Cache.RedisDB = getInt("REDIS_DB", c.Cache.RedisDB)
	c.Cache.TTL = getDuration("CACHE_TTL", c.Cache.TTL)
	c.Security.BcryptCost = getInt("BCRYPT_COST", c.Security.BcryptCost)
}

// Validate rejects settings the server cannot run with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}
	switch c.Cache.Type {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("unsupported cache type %q", c.Cache.Type)
	}
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("bcrypt cost must be between 4 and 31, got %d", c.Security.BcryptCost)
	}
	return nil
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			log.Printf("warning: env %s must be integer but got '%s', using fallback %d", key, val, fallback)
			return fallback
		}
		return i
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("warning: env %s must be a duration but got '%s', using fallback %s", key, val, fallback)
			return fallback
		}
		return d
	}
	return fallback
}
