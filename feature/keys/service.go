package keys

import (
	"context"
	"errors"
	"sync"
	"time"

	"keys-monitor/core/reconcile"

	"go.uber.org/zap"
)

// ErrNoFile is returned by Sync when no path was given.
var ErrNoFile = errors.New("no addon file given")

// SyncOptions controls one sync pass.
type SyncOptions struct {
	// DryRun merges but never writes.
	DryRun bool
}

// SyncResult describes one finished pass.
type SyncResult struct {
	Path     string          `json:"path"`
	Records  int             `json:"records"`
	Plan     *reconcile.Plan `json:"plan"`
	Written  bool            `json:"written"`
	Duration time.Duration   `json:"duration"`
}

// Service runs sync passes: parse the addon file, merge with the sheet, write back.
type Service struct {
	parser *Parser
	engine *reconcile.Engine
	store  reconcile.Store
	logger *zap.Logger

	// Passes never overlap; the sheet has a single local writer.
	mu sync.Mutex
}

// NewService creates a new keys service.
func NewService(parser *Parser, engine *reconcile.Engine, store reconcile.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		parser: parser,
		engine: engine,
		store:  store,
		logger: logger,
	}
}

// Sync runs one pass over path. Parse problems yield an empty pass that
// writes nothing. Store errors are returned and nothing is written.
func (s *Service) Sync(ctx context.Context, path string, opts SyncOptions) (*SyncResult, error) {
	if path == "" {
		return nil, ErrNoFile
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	l := s.logger.With(zap.String("path", path))

	records, timestamps := s.parser.ParseFile(path)
	l.Info("Parsed addon file", zap.Int("records", len(records)))

	plan, err := reconcile.ReconcileWithPlan(ctx, s.engine, s.store, records, timestamps)
	if err != nil {
		l.Error("Sync skipped", zap.Error(err))
		return nil, err
	}

	result := &SyncResult{Path: path, Records: len(records), Plan: plan}

	if plan.Empty {
		l.Info("No keys found, sheet left untouched")
		result.Duration = time.Since(start)
		return result, nil
	}

	written, err := reconcile.ApplyPlan(ctx, s.store, plan, reconcile.ApplyOptions{DryRun: opts.DryRun})
	if err != nil {
		l.Error("Sync skipped", zap.Error(err))
		return nil, err
	}
	result.Written = written
	result.Duration = time.Since(start)

	l.Info("Sync finished",
		zap.Int("inserted", plan.Summary.Inserted),
		zap.Int("updated", plan.Summary.Updated),
		zap.Int("kept", plan.Summary.Kept),
		zap.Int("carried", plan.Summary.Carried),
		zap.Int("total", plan.Summary.Total),
		zap.Bool("written", written),
		zap.Bool("dry_run", opts.DryRun),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}

// Rows returns the rows currently in the sheet.
func (s *Service) Rows(ctx context.Context) ([]reconcile.Row, error) {
	snap, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Rows(), nil
}
