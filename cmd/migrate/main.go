// Command migrate applies the embedded schema migrations.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/joho/godotenv"

	"github.com/testersconnect/site/internal/config"
	"github.com/testersconnect/site/migrations"
)

const EnvDatabaseURL = "DATABASE_URL"

func main() {
	var (
		url     = flag.String("url", "", "pgx5:// database URL (defaults to the configured database)")
		up      = flag.Bool("up", false, "Apply all pending migrations")
		down    = flag.Int("down", 0, "Roll back N migrations")
		force   = flag.Int("force", -1, "Force the schema version without running migrations")
		version = flag.Bool("version", false, "Print the current schema version")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("env load failed: %v", err)
	}

	target, err := databaseURL(*url)
	if err != nil {
		log.Fatal(err)
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		log.Fatalf("open migrations: %v", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, target)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer m.Close()

	switch {
	case *up:
		err = m.Up()
	case *down > 0:
		err = m.Steps(-*down)
	case *force >= 0:
		err = m.Force(*force)
	case *version:
		v, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			fmt.Println("no migrations applied")
			return
		}
		if verr != nil {
			log.Fatalf("read version: %v", verr)
		}
		fmt.Printf("version %d (dirty: %t)\n", v, dirty)
		return
	default:
		fmt.Println("usage: migrate [-url <pgx5-url>] -up | -down N | -force V | -version")
		flag.PrintDefaults()
		return
	}

	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Println("no change")
		return
	}
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}
	fmt.Println("migrations complete")
}

func databaseURL(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		return v, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("config load failed: %w", err)
	}
	return cfg.Database.URL(), nil
}
