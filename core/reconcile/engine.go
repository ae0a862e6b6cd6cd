package reconcile

import (
	"strconv"
	"time"

	"keys-monitor/core/utils"

	"go.uber.org/zap"
)

// Engine merges freshly parsed records into a remote snapshot using
// last-writer-wins on the producer timestamp.
type Engine struct {
	resolver NameResolver
	writerID string
	now      func() time.Time
	logger   *zap.Logger
}

// NewEngine creates an engine writing rows as writerID.
func NewEngine(resolver NameResolver, writerID string, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		resolver: resolver,
		writerID: writerID,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock replaces the wall clock used for LastUpdated.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// WriterID returns the identity stamped into SourceID.
func (e *Engine) WriterID() string {
	return e.writerID
}

// Merge reconciles fresh records against snapshot.
//
// Fresh units come first in input order, each either newly derived (insert,
// or update when the fresh timestamp is strictly greater) or the remote row
// unchanged. Remote units absent from fresh follow in snapshot order.
// A repeated unit in fresh is resolved last-wins at its first position.
func (e *Engine) Merge(fresh []Record, timestamps map[string]string, snapshot *Snapshot) *Plan {
	mergedAt := e.now()
	plan := &Plan{MergedAt: mergedAt}
	plan.Summary.Remote = snapshot.Len()

	fresh = dedupe(fresh)
	plan.Summary.Fresh = len(fresh)

	if len(fresh) == 0 {
		plan.Empty = true
		plan.Rows = snapshot.Rows()
		plan.Summary.Total = len(plan.Rows)
		return plan
	}

	stamp := mergedAt.Format(LastUpdatedLayout)
	seen := make(map[string]struct{}, len(fresh))

	for _, rec := range fresh {
		seen[rec.Unit] = struct{}{}
		localTS := freshTimestamp(rec, timestamps)

		remote, ok := snapshot.Get(rec.Unit)
		if !ok {
			plan.Rows = append(plan.Rows, e.derive(rec, localTS, stamp))
			plan.Actions = append(plan.Actions, Action{Type: ActionInsert, Unit: rec.Unit, Local: localTS})
			plan.Summary.Inserted++
			e.logger.Info("Adding new key",
				zap.String("unit", rec.Unit),
				zap.Int("key_level", rec.KeyLevel),
				zap.Int("dungeon_id", rec.DungeonID))
			continue
		}

		if utils.ParseTimestamp(localTS) > utils.ParseTimestamp(remote.GeneratedAt) {
			plan.Rows = append(plan.Rows, e.derive(rec, localTS, stamp))
			plan.Actions = append(plan.Actions, Action{Type: ActionUpdate, Unit: rec.Unit, Local: localTS, Remote: remote.GeneratedAt})
			plan.Summary.Updated++
			e.logger.Info("Updating key",
				zap.String("unit", rec.Unit),
				zap.Int("key_level", rec.KeyLevel),
				zap.String("local_ts", localTS),
				zap.String("remote_ts", remote.GeneratedAt))
			continue
		}

		plan.Rows = append(plan.Rows, remote)
		plan.Actions = append(plan.Actions, Action{Type: ActionKeep, Unit: rec.Unit, Local: localTS, Remote: remote.GeneratedAt})
		plan.Summary.Kept++
		e.logger.Debug("Keeping existing key",
			zap.String("unit", rec.Unit),
			zap.String("local_ts", localTS),
			zap.String("remote_ts", remote.GeneratedAt))
	}

	for _, remote := range snapshot.Rows() {
		if _, ok := seen[remote.Unit]; ok {
			continue
		}
		plan.Rows = append(plan.Rows, remote)
		plan.Actions = append(plan.Actions, Action{Type: ActionCarry, Unit: remote.Unit})
		plan.Summary.Carried++
	}

	plan.Summary.Total = len(plan.Rows)
	return plan
}

func (e *Engine) derive(rec Record, ts, stamp string) Row {
	return Row{
		Unit:         rec.Unit,
		KeyLevel:     strconv.Itoa(rec.KeyLevel),
		LocationName: e.resolver.Resolve(rec.DungeonID),
		LastUpdated:  stamp,
		SourceID:     e.writerID,
		GeneratedAt:  ts,
	}
}

// freshTimestamp looks the unit up in the parser's timestamp map, falling
// back to the record's own value and finally to "0".
func freshTimestamp(rec Record, timestamps map[string]string) string {
	if ts, ok := timestamps[rec.Unit]; ok {
		return utils.DefaultString(ts, "0")
	}
	return utils.DefaultString(rec.GeneratedAt, "0")
}

// dedupe keeps one record per unit: the last occurrence wins, placed where
// the unit first appeared. Records without a unit are dropped.
func dedupe(records []Record) []Record {
	pos := make(map[string]int, len(records))
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.Unit == "" {
			continue
		}
		if i, ok := pos[rec.Unit]; ok {
			out[i] = rec
			continue
		}
		pos[rec.Unit] = len(out)
		out = append(out, rec)
	}
	return out
}
