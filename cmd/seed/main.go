package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/mestral-events/opsboard/backend/internal/collections"
	"github.com/mestral-events/opsboard/backend/internal/config"
	"github.com/mestral-events/opsboard/backend/internal/repository"
	"github.com/mestral-events/opsboard/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation (1: seed random users, 2: seed random assignment records, 3: seed random vehicle assignments)")
	flag.IntVar(&n, "n", 5, "number of rows to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("could not load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("could not create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not connect; ping to fail fast on a bad DSN
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("could not reach the database", "error", err)
		return
	}

	resolver := collections.NewResolver(collections.DefaultCollections)
	repo := repository.NewRepository(cfg, dbpool, resolver)

	if n <= 0 {
		slog.Error("n must be positive")
		return
	}

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		seed.SeedUsers(repo, n, cfg.Seed.User.Password, cfg.Email.UserDomain)
	case 2:
		seed.SeedRecords(repo, resolver, n)
	case 3:
		seed.SeedVehicleAssignments(repo, n)
	default:
		slog.Error("unknown operation")
	}
}
