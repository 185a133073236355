package config

import (
	"fmt"
	"os"
	"strings"
)

const EnvAdminResourcesURL = "ADMIN_RESOURCES_URL"

// AdminConfig holds settings for the admin forms.
type AdminConfig struct {
	// ResourcesURL is where a successful resource form submission redirects.
	ResourcesURL string `toml:"resources_url"`
}

func (c *AdminConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *AdminConfig) Merge(overlay *AdminConfig) {
	if overlay.ResourcesURL != "" {
		c.ResourcesURL = overlay.ResourcesURL
	}
}

func (c *AdminConfig) loadDefaults() {
	if c.ResourcesURL == "" {
		c.ResourcesURL = "/admin/resources"
	}
}

func (c *AdminConfig) loadEnv() {
	if v := os.Getenv(EnvAdminResourcesURL); v != "" {
		c.ResourcesURL = v
	}
}

func (c *AdminConfig) validate() error {
	if strings.ContainsAny(c.ResourcesURL, "?#") {
		return fmt.Errorf("resources_url must not carry a query or fragment")
	}
	return nil
}
