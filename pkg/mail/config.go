package mail

import (
	"fmt"
	"os"
)

type Provider string

const (
	ProviderConsole  Provider = "console"
	ProviderSendGrid Provider = "sendgrid"
)

// Config contains outbound mail settings.
type Config struct {
	Provider  Provider          `toml:"provider"`
	APIKey    string            `toml:"api_key"`
	FromName  string            `toml:"from_name"`
	FromEmail string            `toml:"from_email"`
	AdminTo   string            `toml:"admin_to"`
	Templates map[string]string `toml:"templates"`
}

type Env struct {
	Provider  string
	APIKey    string
	FromName  string
	FromEmail string
	AdminTo   string
}

// TemplateID resolves a logical template name. Unmapped names are used as-is.
func (c *Config) TemplateID(name string) string {
	if id, ok := c.Templates[name]; ok && id != "" {
		return id
	}
	return name
}

func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

func (c *Config) Merge(overlay *Config) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.FromName != "" {
		c.FromName = overlay.FromName
	}
	if overlay.FromEmail != "" {
		c.FromEmail = overlay.FromEmail
	}
	if overlay.AdminTo != "" {
		c.AdminTo = overlay.AdminTo
	}
	for name, id := range overlay.Templates {
		if c.Templates == nil {
			c.Templates = make(map[string]string)
		}
		c.Templates[name] = id
	}
}

func (c *Config) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderConsole
	}
	if c.FromName == "" {
		c.FromName = "Testers Connect"
	}
	if c.FromEmail == "" {
		c.FromEmail = "hello@testersconnect.local"
	}
	if c.AdminTo == "" {
		c.AdminTo = c.FromEmail
	}
}

func (c *Config) loadEnv(env *Env) {
	set := func(key string, dst *string) {
		if key == "" {
			return
		}
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if env.Provider != "" {
		if v := os.Getenv(env.Provider); v != "" {
			c.Provider = Provider(v)
		}
	}
	set(env.APIKey, &c.APIKey)
	set(env.FromName, &c.FromName)
	set(env.FromEmail, &c.FromEmail)
	set(env.AdminTo, &c.AdminTo)
}

func (c *Config) validate() error {
	switch c.Provider {
	case ProviderConsole:
	case ProviderSendGrid:
		if c.APIKey == "" {
			return fmt.Errorf("api_key required for sendgrid provider")
		}
	default:
		return fmt.Errorf("invalid provider: %s (must be console or sendgrid)", c.Provider)
	}
	if c.FromEmail == "" {
		return fmt.Errorf("from_email required")
	}
	return nil
}
