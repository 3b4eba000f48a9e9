package main

import (
	"log"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/logger"
	"moviecatalog/postgres"
	"strconv"

	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	lg, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		lg.Fatalw("cannot connect to db", "error", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		lg.Fatalw("cannot get db instance", "error", err)
	}
	defer sqlDB.Close()

	migrations := &migrate.FileMigrationSource{
		Dir: "migrations",
	}

	total, err := migrate.Exec(sqlDB, "postgres", migrations, migrate.Up)
	if err != nil {
		lg.Fatalw("cannot execute migration", "error", err)
	}

	lg.Infow("applied migrations", "total", total)
}
