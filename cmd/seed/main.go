package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/testersconnect/site/internal/config"
)

const EnvDatabaseDSN = "DATABASE_DSN"

func main() {
	var (
		dsn  = flag.String("dsn", "", "Database connection string (defaults to the configured database)")
		all  = flag.Bool("all", false, "Run all seeders")
		only = flag.String("only", "", "Run one seeder by name")
		file = flag.String("file", "", "External seed file for -only (overrides embedded)")
		list = flag.Bool("list", false, "List available seeders")
	)
	flag.Parse()

	if *list {
		fmt.Println("Available seeders:")
		for _, s := range listSeeders() {
			fmt.Printf("  - %s: %s\n", s.Name(), s.Description())
		}
		return
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("env load failed: %v", err)
	}

	if *dsn == "" {
		*dsn = os.Getenv(EnvDatabaseDSN)
	}
	if *dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("database connection string required: use -dsn, %s, or config.toml: %v", EnvDatabaseDSN, err)
		}
		*dsn = cfg.Database.Dsn()
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	ctx := context.Background()

	switch {
	case *all:
		if err := runAllSeeders(ctx, db); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		fmt.Println("all seeders completed successfully")

	case *only != "":
		if *file != "" {
			if seeder, ok := getSeeder(*only); ok {
				seeder.SetFile(*file)
			}
		}
		if err := runSeeder(ctx, db, *only); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		fmt.Printf("%s seeded successfully\n", *only)

	default:
		fmt.Println("usage: seed [-dsn <connection-string>] [-all|-only <name>] [-file <path>] [-list]")
		flag.PrintDefaults()
	}
}
