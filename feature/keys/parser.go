package keys

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"keys-monitor/core/reconcile"
	"keys-monitor/feature/keys/luatable"

	"go.uber.org/zap"
)

const (
	// DefaultTableName is the SavedVariables global holding the key list.
	DefaultTableName = "AstralKeys"
	// DefaultBoundaryName is the global written right after it.
	DefaultBoundaryName = "AstralCharacters"
)

// ErrTableNotFound is returned when the text has no assignment to the table.
var ErrTableNotFound = errors.New("table assignment not found")

// Parser extracts keystone records from an addon SavedVariables file.
type Parser struct {
	tableName    string
	boundaryName string
	logger       *zap.Logger
}

// NewParser creates a parser for the given table and boundary names.
// Empty names fall back to the AstralKeys defaults.
func NewParser(tableName, boundaryName string, logger *zap.Logger) *Parser {
	if tableName == "" {
		tableName = DefaultTableName
	}
	if boundaryName == "" {
		boundaryName = DefaultBoundaryName
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{tableName: tableName, boundaryName: boundaryName, logger: logger}
}

// ParseFile reads path and parses its contents.
// A read failure is logged and yields empty results.
func (p *Parser) ParseFile(path string) ([]reconcile.Record, map[string]string) {
	content, err := os.ReadFile(path)
	if err != nil {
		p.logger.Error("Failed to read addon file", zap.String("path", path), zap.Error(err))
		return []reconcile.Record{}, map[string]string{}
	}
	p.logger.Debug("Processing addon file", zap.String("path", path), zap.Int("bytes", len(content)))
	return p.Parse(string(content))
}

// Parse extracts records and the unit -> timestamp map from raw file text.
// It never fails: any problem is logged and yields empty results.
func (p *Parser) Parse(text string) ([]reconcile.Record, map[string]string) {
	records, timestamps, err := p.parse(text)
	if err != nil {
		p.logger.Warn("Failed to parse key table", zap.String("table", p.tableName), zap.Error(err))
		return []reconcile.Record{}, map[string]string{}
	}
	p.logger.Debug("Extracted key entries", zap.Int("count", len(records)))
	return records, timestamps
}

func (p *Parser) parse(text string) (records []reconcile.Record, timestamps map[string]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decoder panic: %v", r)
		}
	}()

	literal, err := p.isolate(text)
	if err != nil {
		return nil, nil, err
	}

	tbl, err := luatable.DecodeTable(literal)
	if err != nil {
		return nil, nil, err
	}

	records, timestamps = p.extract(tbl)
	return records, timestamps, nil
}

// isolate cuts the table literal out of the file: from the table assignment
// up to the boundary assignment or the end of text. Braces lost to the cut
// are restored.
func (p *Parser) isolate(text string) (string, error) {
	marker := p.tableName + " = "
	start := strings.Index(text, marker)
	if start == -1 {
		return "", fmt.Errorf("%w: %s", ErrTableNotFound, p.tableName)
	}

	literal := text[start+len(marker):]
	if end := strings.Index(literal, p.boundaryName+" = "); end != -1 {
		literal = literal[:end]
	}
	literal = strings.TrimSpace(literal)

	if !strings.HasPrefix(literal, "{") {
		literal = "{" + literal
	}
	if !strings.HasSuffix(literal, "}") {
		literal = literal + "}"
	}
	return literal, nil
}

// extract turns decoded entries into records. An entry is used only when it
// carries unit, key_level and dungeon_id in a usable shape. A unit listed
// twice keeps its first position and takes the later values.
func (p *Parser) extract(tbl *luatable.Table) ([]reconcile.Record, map[string]string) {
	records := make([]reconcile.Record, 0, tbl.Len())
	timestamps := make(map[string]string, tbl.Len())
	pos := make(map[string]int, tbl.Len())

	for i, entry := range tbl.Entries() {
		rec, ok := p.record(i, entry)
		if !ok {
			continue
		}

		timestamps[rec.Unit] = rec.GeneratedAt
		if j, dup := pos[rec.Unit]; dup {
			p.logger.Debug("Duplicate unit in key table, keeping later entry", zap.String("unit", rec.Unit))
			records[j] = rec
			continue
		}
		pos[rec.Unit] = len(records)
		records = append(records, rec)
	}
	return records, timestamps
}

func (p *Parser) record(i int, entry luatable.Value) (reconcile.Record, bool) {
	fields, ok := entry.AsTable()
	if !ok {
		return reconcile.Record{}, false
	}

	unitVal, hasUnit := fields.Field("unit")
	levelVal, hasLevel := fields.Field("key_level")
	dungeonVal, hasDungeon := fields.Field("dungeon_id")
	if !hasUnit || !hasLevel || !hasDungeon {
		return reconcile.Record{}, false
	}

	unit, ok := unitVal.AsDecimal()
	if !ok || unit == "" {
		p.skip(i, "unit", unitVal)
		return reconcile.Record{}, false
	}
	level, ok := levelVal.AsInt()
	if !ok {
		p.skip(i, "key_level", levelVal)
		return reconcile.Record{}, false
	}
	dungeon, ok := dungeonVal.AsInt()
	if !ok {
		p.skip(i, "dungeon_id", dungeonVal)
		return reconcile.Record{}, false
	}

	ts := "0"
	if tsVal, ok := fields.Field("time_stamp"); ok {
		if s, ok := tsVal.AsDecimal(); ok && s != "" {
			ts = s
		}
	}

	return reconcile.Record{Unit: unit, KeyLevel: level, DungeonID: dungeon, GeneratedAt: ts}, true
}

func (p *Parser) skip(i int, field string, v luatable.Value) {
	p.logger.Debug("Skipping key entry with unusable field",
		zap.Int("entry", i+1),
		zap.String("field", field),
		zap.String("value", v.String()))
}
