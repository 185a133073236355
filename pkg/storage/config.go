package storage

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Provider selects the object storage backend.
type Provider string

const (
	ProviderFilesystem Provider = "filesystem"
	ProviderS3         Provider = "s3"
)

// Buckets names the three object buckets the site writes to.
type Buckets struct {
	EventCovers    string `toml:"event_covers"`
	ResourceCovers string `toml:"resource_covers"`
	ResourceFiles  string `toml:"resource_files"`
}

// Config contains object storage configuration.
type Config struct {
	Provider Provider `toml:"provider"`

	// BasePath is the root directory for filesystem storage.
	BasePath string `toml:"base_path"`

	// PublicBaseURL prefixes "{bucket}/{key}" when building public object URLs.
	PublicBaseURL string `toml:"public_base_url"`

	Endpoint        string `toml:"endpoint"`
	Region          string `toml:"region"`
	AccessKeyID     string `toml:"access_key_id"`
	SecretAccessKey string `toml:"secret_access_key"`
	UsePathStyle    *bool  `toml:"use_path_style"`

	Buckets Buckets `toml:"buckets"`
}

type Env struct {
	Provider        string
	BasePath        string
	PublicBaseURL   string
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    string
}

// PathStyle reports whether S3 requests address buckets in the path.
func (c *Config) PathStyle() bool {
	return c.UsePathStyle == nil || *c.UsePathStyle
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.PublicBaseURL != "" {
		c.PublicBaseURL = overlay.PublicBaseURL
	}
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.Region != "" {
		c.Region = overlay.Region
	}
	if overlay.AccessKeyID != "" {
		c.AccessKeyID = overlay.AccessKeyID
	}
	if overlay.SecretAccessKey != "" {
		c.SecretAccessKey = overlay.SecretAccessKey
	}
	if overlay.UsePathStyle != nil {
		c.UsePathStyle = overlay.UsePathStyle
	}
	if overlay.Buckets.EventCovers != "" {
		c.Buckets.EventCovers = overlay.Buckets.EventCovers
	}
	if overlay.Buckets.ResourceCovers != "" {
		c.Buckets.ResourceCovers = overlay.Buckets.ResourceCovers
	}
	if overlay.Buckets.ResourceFiles != "" {
		c.Buckets.ResourceFiles = overlay.Buckets.ResourceFiles
	}
}

func (c *Config) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderFilesystem
	}
	if c.BasePath == "" {
		c.BasePath = ".data/objects"
	}
	if c.PublicBaseURL == "" {
		c.PublicBaseURL = "http://localhost:8080/storage"
	}
	if c.Region == "" {
		c.Region = "us-east-1"
	}
	if c.Buckets.EventCovers == "" {
		c.Buckets.EventCovers = "event-covers"
	}
	if c.Buckets.ResourceCovers == "" {
		c.Buckets.ResourceCovers = "resources-covers"
	}
	if c.Buckets.ResourceFiles == "" {
		c.Buckets.ResourceFiles = "resources-files"
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
	set(env.BasePath, &c.BasePath)
	set(env.PublicBaseURL, &c.PublicBaseURL)
	set(env.Endpoint, &c.Endpoint)
	set(env.Region, &c.Region)
	set(env.AccessKeyID, &c.AccessKeyID)
	set(env.SecretAccessKey, &c.SecretAccessKey)

	if env.UsePathStyle != "" {
		if v := os.Getenv(env.UsePathStyle); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.UsePathStyle = &b
			}
		}
	}
}

func (c *Config) validate() error {
	c.PublicBaseURL = strings.TrimRight(c.PublicBaseURL, "/")

	switch c.Provider {
	case ProviderFilesystem:
		if c.BasePath == "" {
			return fmt.Errorf("base_path required")
		}
	case ProviderS3:
		if c.AccessKeyID == "" || c.SecretAccessKey == "" {
			return fmt.Errorf("access_key_id and secret_access_key required for s3 provider")
		}
	default:
		return fmt.Errorf("invalid provider: %s (must be filesystem or s3)", c.Provider)
	}
	return nil
}
