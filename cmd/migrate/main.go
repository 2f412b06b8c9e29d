package main

import (
	"flag"
	"fmt"
	"os"

	"edugate/internal/adapters/persistence/migrations"
	"edugate/internal/config"

	"github.com/sirupsen/logrus"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: migrate [up|down|version]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}
	log := config.NewLogger(cfg)

	driver := cfg.Database.Driver
	dsn := cfg.Database.DSN()
	entry := log.WithFields(logrus.Fields{"driver": driver, "database": cfg.Database.DBName})

	switch command {
	case "up":
		if err := migrations.Up(driver, dsn); err != nil {
			entry.Fatalf("migrate up failed: %v", err)
		}
		entry.Info("migrations applied")
	case "down":
		if err := migrations.Down(driver, dsn); err != nil {
			entry.Fatalf("migrate down failed: %v", err)
		}
		entry.Info("migrations rolled back")
	case "version":
		version, dirty, err := migrations.Version(driver, dsn)
		if err != nil {
			entry.Fatalf("read version failed: %v", err)
		}
		entry.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("schema version")
	default:
		flag.Usage()
		os.Exit(2)
	}
}
