// Command migrate applies the embedded schema migrations. Usage:
//
//	migrate [up|down|status]
//
// With no argument it migrates up.
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/ravshanbek/catalog-api/internal/config"
	"github.com/ravshanbek/catalog-api/internal/database"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	ctx := context.Background()
	switch cmd {
	case "up":
		err = database.MigrateUp(ctx, db)
	case "down":
		err = database.MigrateDown(ctx, db)
	case "status":
		err = database.MigrateStatus(ctx, db)
	default:
		log.Fatalf("unknown command %q (want up, down or status)", cmd)
	}
	if err != nil {
		log.Fatalf("migrate %s: %v", cmd, err)
	}
}
