package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Postgres PostgresConfig `koanf:"postgres"`
	HTTP     HTTPConfig     `koanf:"http"`
	Log      LogConfig      `koanf:"log"`
	Redis    RedisConfig    `koanf:"redis"`
	Operator OperatorConfig `koanf:"operator"`
}

type PostgresConfig struct {
	Address  string `koanf:"address"`
	Port     string `koanf:"port"`
	DB       string `koanf:"db"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}

// URL returns the lib/pq connection string for the configured database.
// Credentials are escaped, so passwords may contain URL delimiters.
func (p PostgresConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.Username, p.Password),
		Host:     net.JoinHostPort(p.Address, p.Port),
		Path:     "/" + p.DB,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

type HTTPConfig struct {
	Port string `koanf:"port"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

// RedisConfig configures the transaction read cache. An empty Address disables it.
type RedisConfig struct {
	Address  string        `koanf:"address"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	TTL      time.Duration `koanf:"ttl"`
}

type OperatorConfig struct {
	Workers int `koanf:"workers"`
}

// envPrefixes lists the environment variable prefixes that map onto config keys.
var envPrefixes = []string{"POSTGRES_", "HTTP_", "LOG_", "REDIS_", "OPERATOR_"}

// In all cases the default behavior should be for the docker compose setup
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"postgres.address":  "localhost",
		"postgres.port":     "5433",
		"postgres.db":       "postgres",
		"postgres.username": "postgres",
		"postgres.password": "testpassword",
		"http.port":         "9446",
		"log.level":         "info",
		"redis.address":     "",
		"redis.db":          0,
		"redis.ttl":         "10m",
		"operator.workers":  4,
	}
}

// ProcessEnvironmentVariables loads configuration from defaults, the YAML file
// named by CONFIG_FILE (if any), and the environment.
func ProcessEnvironmentVariables() (*Config, error) {
	return Load(os.Getenv("CONFIG_FILE"))
}

// Load is ProcessEnvironmentVariables with an explicit config file path.
// Environment variables take precedence over the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("godotenv.Load: %w", err)
	}

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Operator.Workers < 1 {
		cfg.Operator.Workers = 1
	}

	return &cfg, nil
}

// envKey maps POSTGRES_ADDRESS to postgres.address and drops unrelated variables.
func envKey(s string) string {
	for _, prefix := range envPrefixes {
		if strings.HasPrefix(s, prefix) {
			return strings.Replace(strings.ToLower(s), "_", ".", 1)
		}
	}
	return ""
}
