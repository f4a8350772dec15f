package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"

	"github.com/UnknownOlympus/iris/internal/config"
	"github.com/UnknownOlympus/iris/internal/repository"
)

func main() {
	cfg := config.MustLoad()

	dbpool, dbErr := repository.NewDatabase(context.Background(),
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Dbname)
	if dbErr != nil {
		log.Fatalf("Failed to connect to DB: %v", dbErr)
	}
	defer dbpool.Close()

	dtb := stdlib.OpenDBFromPool(dbpool)
	defer dtb.Close()

	if migrationErr := goose.Up(dtb, "migrations"); migrationErr != nil {
		log.Fatal(migrationErr) //nolint:gocritic // pool is released by process exit
	}

	log.Println("Migrations applied successfully")
}
