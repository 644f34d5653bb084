// Package config loads the qb configuration used by the executor and the
// qb command.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/qjebbs/go-qb"
)

const (
	maxWalkDepth = 25
)

// Fs is the file system configuration files are read from.
var Fs = afero.NewOsFs()

// Config represents the configuration from qb.yaml.
type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Keys       string           `mapstructure:"keys"`
	SoftDelete SoftDeleteConfig `mapstructure:"soft_delete"`
	Audit      bool             `mapstructure:"audit"`
	Debug      bool             `mapstructure:"debug"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	DSN      string `mapstructure:"dsn"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Charset  string `mapstructure:"charset"`
	SSLMode  string `mapstructure:"sslmode"`
}

// SoftDeleteConfig turns DELETE statements into updates of Column.
type SoftDeleteConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Column  string `mapstructure:"column"`
}

// Load discovers and loads configuration with proper precedence:
// env > config file > .env > defaults.
//
// Returns the loaded config, the path to the config file (empty if none found),
// and any error encountered.
func Load(explicitPath string) (*Config, string, error) {
	v := viper.New()
	v.SetFs(Fs)

	setDefaults(v)

	if err := loadDotEnv(); err != nil {
		return nil, "", err
	}
	v.SetEnvPrefix("QB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath, err := findConfigFile(explicitPath)
	if err != nil {
		return nil, "", err
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, configPath, err
	}
	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 0)
	v.SetDefault("database.name", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.sslmode", "")

	v.SetDefault("keys", "sequential")

	v.SetDefault("soft_delete.enabled", false)
	v.SetDefault("soft_delete.column", qb.DefaultSoftDeleteColumn)

	v.SetDefault("audit", false)
	v.SetDefault("debug", false)
}

// loadDotEnv exports the variables of .env in the working directory,
// keeping those already set.
func loadDotEnv() error {
	f, err := Fs.Open(".env")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("opening .env: %w", err)
	}
	defer f.Close()
	env, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing .env: %w", err)
	}
	for k, val := range env {
		if _, ok := os.LookupEnv(k); ok {
			continue
		}
		if err := os.Setenv(k, val); err != nil {
			return err
		}
	}
	return nil
}

// findConfigFile finds the config file to use.
// If explicitPath is provided, it validates the file exists.
// Otherwise, it walks up from cwd looking for qb.yaml or qb.yml,
// stopping at a .git directory or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := Fs.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for i := 0; i < maxWalkDepth; i++ {
		for _, name := range []string{"qb.yaml", "qb.yml"} {
			path := filepath.Join(dir, name)
			if _, err := Fs.Stat(path); err == nil {
				return path, nil
			}
		}
		// stop at the repo root
		if _, err := Fs.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", nil
}

func (c *Config) validate() error {
	switch c.Keys {
	case "sequential", "random":
	default:
		return fmt.Errorf("keys: unknown key generator %q", c.Keys)
	}
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite3":
	default:
		return fmt.Errorf("database.driver: unsupported driver %q", c.Database.Driver)
	}
	return nil
}

// Options returns the builder options of the config.
func (c *Config) Options() []qb.Option {
	var opts []qb.Option
	if c.Keys == "random" {
		opts = append(opts, qb.WithKeys(qb.RandomKeys))
	}
	return opts
}

// SoftDeleteColumn returns the soft delete column, and whether
// soft delete is enabled.
func (c *Config) SoftDeleteColumn() (string, bool) {
	if !c.SoftDelete.Enabled {
		return "", false
	}
	if c.SoftDelete.Column == "" {
		return qb.DefaultSoftDeleteColumn, true
	}
	return c.SoftDelete.Column, true
}

// DSN returns the database connection string.
// If database.dsn is set, it's returned directly.
// Otherwise, builds a DSN from discrete fields for the driver.
func (c *Config) DSN() (string, error) {
	db := c.Database
	if db.DSN != "" {
		return db.DSN, nil
	}
	if db.Name == "" {
		return "", errors.New("database.name is required when database.dsn is not set")
	}
	switch db.Driver {
	case "sqlite3":
		return db.Name, nil
	case "mysql":
		if db.User == "" {
			return "", errors.New("database.user is required when database.dsn is not set")
		}
		m := mysql.NewConfig()
		m.User = db.User
		m.Passwd = db.Password
		m.Net = "tcp"
		m.Addr = net.JoinHostPort(db.Host, strconv.Itoa(portOr(db.Port, 3306)))
		m.DBName = db.Name
		m.ParseTime = true
		if db.Charset != "" {
			m.Params = map[string]string{"charset": db.Charset}
		}
		return m.FormatDSN(), nil
	case "postgres":
		if db.User == "" {
			return "", errors.New("database.user is required when database.dsn is not set")
		}
		u := &url.URL{
			Scheme: "postgres",
			Host:   net.JoinHostPort(db.Host, strconv.Itoa(portOr(db.Port, 5432))),
			Path:   "/" + db.Name,
		}
		if db.Password != "" {
			u.User = url.UserPassword(db.User, db.Password)
		} else {
			u.User = url.User(db.User)
		}
		if db.SSLMode != "" {
			q := u.Query()
			q.Set("sslmode", db.SSLMode)
			u.RawQuery = q.Encode()
		}
		return u.String(), nil
	}
	return "", fmt.Errorf("unsupported driver %q", db.Driver)
}

func portOr(port, def int) int {
	if port == 0 {
		return def
	}
	return port
}
