package database

import (
	"fmt"
	"strings"
)

const (
	// DriverSQLite stores everything in a single database file.
	DriverSQLite = "sqlite"
	// DriverPostgres connects to a PostgreSQL server.
	DriverPostgres = "postgres"
)

// Config holds database connection settings.
type Config struct {
	Driver string `yaml:"driver" envconfig:"DB_DRIVER"`
	// Path is the database file used by the sqlite driver.
	Path string `yaml:"path" envconfig:"DB_PATH"`

	Host           string `yaml:"host" envconfig:"DB_HOST"`
	Port           string `yaml:"port" envconfig:"DB_PORT"`
	User           string `yaml:"user" envconfig:"DB_USER"`
	Password       string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name           string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode        string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
}

// Normalize validates the driver selection and fills defaults.
func (c *Config) Normalize() error {
	c.Driver = strings.ToLower(strings.TrimSpace(c.Driver))
	if c.Driver == "" {
		c.Driver = DriverSQLite
	}
	switch c.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Path) == "" {
			c.Path = "data/contentbot.db"
		}
		// SQLite allows a single writer; more connections only add lock contention.
		c.MaxConnections = 1
	case DriverPostgres:
		if c.Host == "" || c.Name == "" {
			return fmt.Errorf("database: host and name are required for postgres")
		}
		if c.Port == "" {
			c.Port = "5432"
		}
		if c.SSLMode == "" {
			c.SSLMode = "disable"
		}
		if c.MaxConnections <= 0 {
			c.MaxConnections = 10
		}
	default:
		return fmt.Errorf("database: unsupported driver %q; allowed: sqlite, postgres", c.Driver)
	}
	return nil
}

func (c Config) postgresDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

func (c Config) postgresURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

func (c Config) sqliteDSN() string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", c.Path)
}

// target describes where the database lives without leaking credentials into logs.
func (c Config) target() string {
	if c.Driver == DriverSQLite {
		return c.Path
	}
	return c.Host + ":" + c.Port + "/" + c.Name
}
