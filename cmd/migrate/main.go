package main

import (
	"flag"
	"fmt"
	"os"

	"wedding-booking/internal/handler/middleware"
	"wedding-booking/internal/infra/db"
	"wedding-booking/internal/pkg/config"
)

func main() {
	var (
		path  = flag.String("path", "", "migrations source url (defaults to MIGRATIONS_PATH)")
		steps = flag.Int("steps", 1, "number of migrations to revert with down")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: migrate [-path file://migrations] [-steps n] up|down|version")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	var cfg config.Config
	if err := config.LoadSections(&cfg.DB, &cfg.Log, &cfg.Migrations); err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *path == "" {
		*path = cfg.Migrations.Path
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	var err error

	switch flag.Arg(0) {
	case "up":
		err = db.Migrate(*path, cfg.DB, logger)
	case "down":
		err = db.Rollback(*path, cfg.DB, *steps)
		if err == nil {
			logger.Info("migrations reverted", "steps", *steps)
		}
	case "version":
		var (
			version uint
			dirty   bool
		)
		version, dirty, err = db.Version(*path, cfg.DB)
		if err == nil {
			fmt.Printf("version %d (dirty=%t)\n", version, dirty)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "migrate %s failed: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}
}
