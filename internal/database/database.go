package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"ms-booking/internal/config"
	"ms-booking/internal/logger"
	"ms-booking/internal/models"
)

// RegisterModels registers the many-to-many join models. Bun needs them
// before any query traverses a Genres relation.
func RegisterModels(db *bun.DB) {
	db.RegisterModel((*models.VenueGenre)(nil), (*models.ArtistGenre)(nil))
}

// Open connects to the database named by cfg.URL: a postgres DSN gets
// lib/pq + pgdialect, anything else is treated as a sqlite path.
func Open(cfg config.DatabaseConfig, log *logger.Logger) (*bun.DB, error) {
	var (
		sqldb *sql.DB
		db    *bun.DB
		err   error
	)

	if IsPostgres(cfg.URL) {
		maxRetries := 5
		for i := 0; i < maxRetries; i++ {
			log.Info("DATABASE", fmt.Sprintf("Connecting to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
			sqldb, err = sql.Open("postgres", cfg.URL)
			if err == nil {
				err = sqldb.Ping()
			}
			if err == nil {
				break
			}
			log.Error("DATABASE", fmt.Sprintf("PostgreSQL connection failed: %v", err))
			if i < maxRetries-1 {
				time.Sleep(2 * time.Second)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		db = bun.NewDB(sqldb, pgdialect.New())
	} else {
		sqldb, err = sql.Open(sqliteshim.ShimName, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// sqlite keeps one writer; a single connection avoids busy errors.
		sqldb.SetMaxOpenConns(1)
		if _, err := sqldb.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
		db = bun.NewDB(sqldb, sqlitedialect.New())
	}

	RegisterModels(db)

	if cfg.QueryLogging {
		db.AddQueryHook(&queryLogger{log: log})
	}

	log.Info("DATABASE", "Database connection successful")
	return db, nil
}

// IsPostgres reports whether the DSN names a postgres database.
func IsPostgres(url string) bool {
	return strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://")
}

// queryLogger is the change-tracking toggle: when enabled every statement
// is echoed through the application logger.
type queryLogger struct {
	log *logger.Logger
}

func (h *queryLogger) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *queryLogger) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	h.log.Debug("SQL", fmt.Sprintf("%s (%s)", event.Query, time.Since(event.StartTime)))
}
