package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/storefront/internal/config"
	"github.com/JaimeStill/storefront/pkg/logging"
)

const EnvDatabaseDSN = "DATABASE_DSN"

var errUsage = errors.New("usage: seed [-dsn <connection-string>] [-all|-seeder <name>] [-file <path>] [-list]")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.NewWriter(&logging.Config{Level: logging.LevelInfo, Format: logging.FormatText}, os.Stderr)

	if err := run(ctx, logger, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	var (
		dsn  = fs.String("dsn", "", "Database connection string (default: $DATABASE_DSN, then config.toml)")
		all  = fs.Bool("all", false, "Run all seeders")
		only = fs.String("seeder", "", "Run a single seeder by name")
		file = fs.String("file", "", "External seed file for -seeder (overrides embedded)")
		list = fs.Bool("list", false, "List available seeders")
	)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if *list {
		for _, s := range listSeeders() {
			fmt.Printf("%-10s %s\n", s.Name(), s.Description())
		}
		return nil
	}

	if !*all && *only == "" {
		return errUsage
	}

	if *only != "" && *file != "" {
		s, ok := getSeeder(*only)
		if !ok {
			return fmt.Errorf("seeder not found: %s", *only)
		}
		f, ok := s.(fileSeeder)
		if !ok {
			return fmt.Errorf("seeder %s does not read files", *only)
		}
		f.SetFile(*file)
	}

	conn, err := resolveDSN(*dsn)
	if err != nil {
		return err
	}

	db, err := sql.Open("pgx", conn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	if *all {
		if err := runAllSeeders(ctx, db); err != nil {
			return err
		}
		logger.Info("all seeders completed", "count", len(seeders))
		return nil
	}

	if err := runSeeder(ctx, db, *only); err != nil {
		return err
	}
	logger.Info("seeder completed", "seeder", *only)
	return nil
}

// resolveDSN prefers the flag, then DATABASE_DSN, then the server's
// database section.
func resolveDSN(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := os.Getenv(EnvDatabaseDSN); v != "" {
		return v, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("no -dsn or %s, and %w", EnvDatabaseDSN, err)
	}
	return cfg.Database.Dsn(), nil
}
