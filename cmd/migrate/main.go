package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/eduquest/admin-api/pkg/config"
	"github.com/eduquest/admin-api/pkg/database"
	"github.com/eduquest/admin-api/pkg/logger"
)

// Usage: migrate [up|down|status|version|redo|reset|up-to N|down-to N]
func main() {
	flag.Parse()
	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}
	var args []string
	if flag.NArg() > 1 {
		args = flag.Args()[1:]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	if err := database.Migrate(db.DB, command, cfg.Database.MigrationsTable, args...); err != nil {
		logr.Fatal("migration failed", zap.String("command", command), zap.Error(err))
	}
	logr.Info("migration finished", zap.String("command", command))
}
