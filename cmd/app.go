package cmd

import (
	"context"
	"fmt"
	"os"

	"keys-monitor/core/config"
	"keys-monitor/core/database"
	"keys-monitor/core/reconcile"
	"keys-monitor/core/settings"
	"keys-monitor/core/sheet"
	"keys-monitor/core/storage"
	"keys-monitor/feature/dungeons"
	"keys-monitor/feature/keys"
	"keys-monitor/feature/monitor"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// components are the wired services shared by the commands.
type components struct {
	resolver *dungeons.Resolver
	store    reconcile.Store
	keys     *keys.Service
	settings *settings.Store
	monitor  *monitor.Monitor
	db       *gorm.DB
}

func (c *components) Close() {
	if c.db != nil {
		_ = database.Close(c.db)
	}
}

// writerID returns the configured writer id, or the host name.
func writerID(cfg *config.Config) string {
	if cfg.Monitor.WriterID != "" {
		return cfg.Monitor.WriterID
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "unknown"
	}
	return host
}

// newStore connects the sheet backend selected by cfg.Store.Driver.
func newStore(ctx context.Context, cfg *config.Config) (reconcile.Store, *gorm.DB, error) {
	deps := sheet.Deps{Bucket: cfg.Storage.Bucket, Object: cfg.Storage.Object}

	switch cfg.Store.Driver {
	case sheet.DriverDatabase:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		deps.DB = db
		store, err := sheet.New(ctx, cfg.Store, deps)
		if err != nil {
			_ = database.Close(db)
			return nil, nil, err
		}
		return store, db, nil
	default:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, nil, err
		}
		deps.Storage = client
		store, err := sheet.New(ctx, cfg.Store, deps)
		return store, nil, err
	}
}

// buildComponents wires resolver, sheet store, sync service and monitor.
// The dungeon list is fetched once; a failure leaves the built-in names in place.
func buildComponents(ctx context.Context, cfg *config.Config, l *zap.Logger) (*components, error) {
	resolver := dungeons.NewResolver(cfg.Dungeons.SourceURL, cfg.Dungeons.Timeout(), l.Named("dungeons"))
	_ = resolver.Refresh(ctx)

	store, db, err := newStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sheet store: %w", err)
	}

	id := writerID(cfg)
	l.Info("Sheet store ready", zap.String("driver", cfg.Store.Driver), zap.String("writer_id", id))

	parser := keys.NewParser(cfg.Monitor.TableName, cfg.Monitor.BoundaryName, l.Named("parser"))
	engine := reconcile.NewEngine(resolver, id, l.Named("reconcile"))
	svc := keys.NewService(parser, engine, store, l.Named("keys"))

	st := settings.NewStore(cfg.Settings, l)
	mon := monitor.New(cfg.Monitor, svc, st, l.Named("monitor"))

	return &components{
		resolver: resolver,
		store:    store,
		keys:     svc,
		settings: st,
		monitor:  mon,
		db:       db,
	}, nil
}
