package forestdb

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds the connection settings for a Postgres server.
type Config struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Database string `koanf:"database"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	SSLMode  string `koanf:"sslmode"`

	MaxOpenConns    int `koanf:"max_open_conns"`
	MaxIdleConns    int `koanf:"max_idle_conns"`
	ConnMaxLifetime int `koanf:"conn_max_lifetime"` // seconds
}

// LoadConfig reads connection settings, layering defaults, an optional YAML
// file and FORESTDB_* environment variables, later layers winning. Pass an
// empty path to skip the file layer; a missing file at a given path is an
// error.
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"host":           "localhost",
		"port":           5432,
		"sslmode":        "disable",
		"max_open_conns": 10,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return Config{}, err
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, err
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, err
		}
	}

	if err := k.Load(env.Provider("FORESTDB_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "FORESTDB_"))
	}), nil); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN renders the config as a key=value connection string.
func (c Config) DSN() string {
	parts := []string{
		fmt.Sprintf("host=%s", c.Host),
		fmt.Sprintf("port=%d", c.Port),
	}
	if c.Database != "" {
		parts = append(parts, fmt.Sprintf("dbname=%s", c.Database))
	}
	if c.Username != "" {
		parts = append(parts, fmt.Sprintf("user=%s", c.Username))
	}
	if c.Password != "" {
		parts = append(parts, fmt.Sprintf("password=%s", c.Password))
	}
	if c.SSLMode != "" {
		parts = append(parts, fmt.Sprintf("sslmode=%s", c.SSLMode))
	}
	return strings.Join(parts, " ")
}
