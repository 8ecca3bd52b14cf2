package repository

import (
	"database/sql"

	"github.com/mestral-events/opsboard/backend/internal/collections"
	"github.com/mestral-events/opsboard/backend/internal/config"
)

type Repository struct {
	cfg      *config.Config
	dbpool   *sql.DB
	resolver *collections.Resolver
}

func NewRepository(cfg *config.Config, dbpool *sql.DB, resolver *collections.Resolver) *Repository {
	return &Repository{
		cfg:      cfg,
		dbpool:   dbpool,
		resolver: resolver,
	}
}
