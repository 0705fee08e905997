package pg

import (
	"context"
	"database/sql"

	"github.com/itchan-dev/roadboard/shared/config"
	"github.com/itchan-dev/roadboard/shared/logger"
	shared_pg "github.com/itchan-dev/roadboard/shared/storage/pg"
)

// Storage implements the board, personal map entry and owner stores on one pool.
type Storage struct {
	db *sql.DB
}

// New connects and brings the schema up to date.
func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	log := logger.Component("storage")
	log.Info("connecting to db", "host", cfg.Private.Pg.Host, "dbname", cfg.Private.Pg.Dbname)
	db, err := shared_pg.Connect(ctx, cfg, shared_pg.DefaultConnectionConfig())
	if err != nil {
		return nil, err
	}
	if err := shared_pg.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	log.Info("successfully connected to db")
	return &Storage{db: db}, nil
}

// NewFromDB wraps an already configured pool.
func NewFromDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
