package events

import (
	"fmt"
	"os"
	"time"
)

// Config controls how the upcoming/past boundary is computed.
type Config struct {
	Timezone string `toml:"timezone"`

	location *time.Location
}

type Env struct {
	Timezone string
}

// Location is the zone whose calendar date counts as "today".
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

func (c *Config) Merge(overlay *Config) {
	if overlay.Timezone != "" {
		c.Timezone = overlay.Timezone
	}
}

func (c *Config) loadDefaults() {
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Timezone != "" {
		if v := os.Getenv(env.Timezone); v != "" {
			c.Timezone = v
		}
	}
}

func (c *Config) validate() error {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	c.location = loc
	return nil
}
