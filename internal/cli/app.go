package cli

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/tengjizhang/linkconv/internal/config"
	"github.com/tengjizhang/linkconv/internal/emit"
	"github.com/tengjizhang/linkconv/internal/markup"
	"github.com/tengjizhang/linkconv/internal/store"
)

// App holds what commands share. The database is opened on first use so
// commands that only convert files never touch it.
type App struct {
	cfg       config.Config
	db        *sql.DB
	store     *store.Store
	converter *emit.Converter
	logger    *slog.Logger
}

func NewApp(cfg config.Config, dbPath, parser string, logger *slog.Logger) (*App, error) {
	cfg.DBPath = dbPath
	cfg.Parser = parser
	t, err := markup.New(parser)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidInput, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		cfg:       cfg,
		converter: emit.NewConverter(t),
		logger:    logger,
	}, nil
}

// Store opens the section database if needed.
func (a *App) Store() (*store.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	db, err := store.OpenDB(a.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", a.cfg.DBPath, err)
	}
	a.logger.Debug("Opened database", "path", a.cfg.DBPath)
	a.db = db
	a.store = store.NewStore(db)
	return a.store, nil
}

func (a *App) Close() error {
	if a.db != nil {
		err := a.db.Close()
		a.db = nil
		a.store = nil
		return err
	}
	return nil
}
