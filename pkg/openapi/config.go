package openapi

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Config describes the published API document. Servers lists extra base
// URLs, such as a staging deploy, advertised next to the site domain.
type Config struct {
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
	Servers     []string `toml:"servers"`
}

// ConfigEnv names the environment variables that override Config.
// Servers is comma-separated.
type ConfigEnv struct {
	Title       string
	Description string
	Servers     string
}

func (c *Config) Finalize(env *ConfigEnv) error {
	if c.Title == "" {
		c.Title = "Testers Connect API"
	}
	if c.Description == "" {
		c.Description = "Events, resources, reviews and notifications for the Testers Connect community site."
	}
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if overlay.Servers != nil {
		c.Servers = overlay.Servers
	}
}

// Apply writes the description and servers onto spec, skipping any server
// already listed.
func (c *Config) Apply(spec *Spec) {
	spec.SetDescription(c.Description)
	for _, s := range c.Servers {
		if !hasServer(spec, s) {
			spec.AddServer(s)
		}
	}
}

func hasServer(spec *Spec, u string) bool {
	for _, s := range spec.Servers {
		if s.URL == u {
			return true
		}
	}
	return false
}

func (c *Config) loadEnv(env *ConfigEnv) {
	if v := getenv(env.Title); v != "" {
		c.Title = v
	}
	if v := getenv(env.Description); v != "" {
		c.Description = v
	}
	if v := getenv(env.Servers); v != "" {
		c.Servers = nil
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				c.Servers = append(c.Servers, s)
			}
		}
	}
}

func (c *Config) validate() error {
	for _, s := range c.Servers {
		u, err := url.Parse(s)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("openapi: invalid server url %q", s)
		}
	}
	return nil
}

func getenv(key string) string {
	if key == "" {
		return ""
	}
	return os.Getenv(key)
}
