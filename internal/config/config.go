// Package config loads the bot configuration: the shared core sections plus
// storage, session and roster settings.
package config

import (
	"fmt"
	"strings"
	"time"

	coreconfig "github.com/m3rciful/contentbot/core/config"
	coredatabase "github.com/m3rciful/contentbot/core/database"
)

// Session backends.
const (
	SessionSQL    = "sql"
	SessionRedis  = "redis"
	SessionMemory = "memory"
)

// SessionConfig selects where dialog sessions live and how long they last.
type SessionConfig struct {
	Backend       string        `yaml:"backend" envconfig:"SESSION_BACKEND"`
	TTL           time.Duration `yaml:"ttl" envconfig:"SESSION_TTL"`
	PurgeSchedule string        `yaml:"purge_schedule" envconfig:"SESSION_PURGE_SCHEDULE"`
}

// RedisConfig is used when the session backend is redis.
type RedisConfig struct {
	Addr     string `yaml:"addr" envconfig:"REDIS_ADDR"`
	Password string `yaml:"password" envconfig:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" envconfig:"REDIS_DB"`
	Prefix   string `yaml:"prefix" envconfig:"REDIS_PREFIX"`
}

// RosterConfig sizes the admin user list pages.
type RosterConfig struct {
	PageSize       int `yaml:"page_size"`
	SearchPageSize int `yaml:"search_page_size"`
}

// Config is the full application configuration.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Database coredatabase.Config `yaml:"database"`
	Session  SessionConfig       `yaml:"session"`
	Redis    RedisConfig         `yaml:"redis"`
	Roster   RosterConfig        `yaml:"roster"`
}

// CoreConfig exposes the embedded core configuration to the command runner.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Config
}

// Load reads path and the environment, then validates and fills defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.Decode(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates every section and applies defaults.
func (c *Config) Normalize() error {
	if err := coreconfig.Normalize(&c.Config); err != nil {
		return err
	}
	if err := c.Database.Normalize(); err != nil {
		return err
	}

	backend := strings.ToLower(strings.TrimSpace(c.Session.Backend))
	if backend == "" {
		backend = SessionSQL
	}
	switch backend {
	case SessionSQL, SessionMemory:
	case SessionRedis:
		if strings.TrimSpace(c.Redis.Addr) == "" {
			return fmt.Errorf("redis.addr is required when session.backend is 'redis'")
		}
		if c.Redis.Prefix == "" {
			c.Redis.Prefix = "contentbot:"
		}
	default:
		return fmt.Errorf("invalid session.backend %q; allowed: sql, redis, memory", c.Session.Backend)
	}
	c.Session.Backend = backend

	if c.Session.TTL <= 0 {
		c.Session.TTL = 24 * time.Hour
	}
	if strings.TrimSpace(c.Session.PurgeSchedule) == "" {
		c.Session.PurgeSchedule = "@every 1h"
	}

	if c.Roster.PageSize <= 0 {
		c.Roster.PageSize = 10
	}
	if c.Roster.SearchPageSize <= 0 {
		c.Roster.SearchPageSize = 50
	}
	return nil
}
