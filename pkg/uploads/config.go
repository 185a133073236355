package uploads

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

// Config holds upload size limits as human sizes. Sizes are binary, so
// "10MB" is 10 * 1024 * 1024 bytes.
type Config struct {
	PDFMaxSize   string `toml:"pdf_max_size"`
	CoverMaxSize string `toml:"cover_max_size"`

	pdfMax   int64
	coverMax int64
}

type Env struct {
	PDFMaxSize   string
	CoverMaxSize string
}

func (c *Config) PDFMaxBytes() int64 {
	return c.pdfMax
}

func (c *Config) CoverMaxBytes() int64 {
	return c.coverMax
}

// FormMaxBytes bounds an entire multipart form carrying both files.
func (c *Config) FormMaxBytes() int64 {
	return c.pdfMax + c.coverMax + 1<<20
}

func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

func (c *Config) Merge(overlay *Config) {
	if overlay.PDFMaxSize != "" {
		c.PDFMaxSize = overlay.PDFMaxSize
	}
	if overlay.CoverMaxSize != "" {
		c.CoverMaxSize = overlay.CoverMaxSize
	}
}

func (c *Config) loadDefaults() {
	if c.PDFMaxSize == "" {
		c.PDFMaxSize = "10MB"
	}
	if c.CoverMaxSize == "" {
		c.CoverMaxSize = "3MB"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.PDFMaxSize != "" {
		if v := os.Getenv(env.PDFMaxSize); v != "" {
			c.PDFMaxSize = v
		}
	}
	if env.CoverMaxSize != "" {
		if v := os.Getenv(env.CoverMaxSize); v != "" {
			c.CoverMaxSize = v
		}
	}
}

func (c *Config) validate() error {
	pdf, err := units.RAMInBytes(c.PDFMaxSize)
	if err != nil {
		return fmt.Errorf("invalid pdf_max_size: %w", err)
	}
	cover, err := units.RAMInBytes(c.CoverMaxSize)
	if err != nil {
		return fmt.Errorf("invalid cover_max_size: %w", err)
	}
	if pdf <= 0 || cover <= 0 {
		return fmt.Errorf("upload sizes must be positive")
	}
	c.pdfMax = pdf
	c.coverMax = cover
	return nil
}
