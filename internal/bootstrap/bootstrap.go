package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/uniadmin/internal/app/schema"
	appServices "github.com/yigit/uniadmin/internal/app/services"
	"github.com/yigit/uniadmin/internal/config"
	"github.com/yigit/uniadmin/internal/dashboard"
	"github.com/yigit/uniadmin/internal/db"
	"github.com/yigit/uniadmin/internal/pkg/logger"
	"github.com/yigit/uniadmin/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Config    *config.Config
	Store     *db.SQLiteDB
	Services  *appServices.Services
	Dashboard *dashboard.Dashboard
	Logger    zerolog.Logger
}

// Close releases the store
func (d *Dependencies) Close() error {
	if d == nil || d.Store == nil {
		return nil
	}
	return d.Store.Close()
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// levelOverride, when set, wins over the configured level.
func LoadConfigAndSetupLogger(configPath, levelOverride string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	level := cfg.Logging.Level
	if levelOverride != "" {
		level = levelOverride
	}
	logLevel := logger.ParseLevel(level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Debug().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the store, creates the schema and loads the sample data.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.SQLiteDB, error) {
	lgr.Debug().Str("path", cfg.Database.Path).Msg("Opening store...")
	store, err := db.NewSQLiteDB(ctx, db.Options{
		Path:        cfg.Database.Path,
		BusyTimeout: cfg.BusyTimeout(),
		JournalMode: cfg.Database.JournalMode,
		Logger:      lgr,
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to open store")
		return nil, err
	}

	if err := schema.Ensure(ctx, store.DB, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create schema")
		store.Close()
		return nil, fmt.Errorf("schema setup failed: %w", err)
	}

	if cfg.Seed.Enabled {
		if err := seed.CreateDefaultData(ctx, store, lgr); err != nil {
			// The store is usable without sample data.
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return store, nil
}

// BuildDependencies wires services and the dashboard over the store.
func BuildDependencies(cfg *config.Config, store *db.SQLiteDB, lgr zerolog.Logger, opts ...appServices.Option) *Dependencies {
	svc := appServices.New(store, lgr, opts...)
	return &Dependencies{
		Config:    cfg,
		Store:     store,
		Services:  svc,
		Dashboard: dashboard.New(svc),
		Logger:    lgr,
	}
}
