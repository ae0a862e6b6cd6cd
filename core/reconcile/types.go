package reconcile

import "time"

// LastUpdatedLayout is the display format of Row.LastUpdated.
const LastUpdatedLayout = "2006-01-02 15:04:05"

// Column order of the remote row range.
const (
	ColUnit = iota
	ColKeyLevel
	ColLocationName
	ColLastUpdated
	ColSourceID
	ColGeneratedAt
	// NumColumns is the width of the remote row range.
	NumColumns
)

// Record is a keystone entry parsed from the local addon file.
type Record struct {
	// Unit identifies the character holding the key. It is the merge key.
	Unit string `json:"unit"`

	// KeyLevel is the keystone level.
	KeyLevel int `json:"key_level"`

	// DungeonID is the numeric location id, resolved to a name on merge.
	DungeonID int `json:"dungeon_id"`

	// GeneratedAt is the producer timestamp as a decimal string ("0" if absent).
	GeneratedAt string `json:"generated_at"`
}

// Row is one row of the remote store. All fields are strings because the
// store is an untyped grid.
type Row struct {
	Unit         string `json:"unit"`
	KeyLevel     string `json:"key_level"`
	LocationName string `json:"location_name"`
	LastUpdated  string `json:"last_updated"`
	SourceID     string `json:"source_id"`
	GeneratedAt  string `json:"generated_at"`
}

// Values returns the row as six positional columns.
func (r Row) Values() []string {
	return []string{r.Unit, r.KeyLevel, r.LocationName, r.LastUpdated, r.SourceID, r.GeneratedAt}
}

// RowFromValues builds a row from positional columns. Missing columns are
// left empty and extra columns are ignored.
func RowFromValues(values []string) Row {
	col := func(i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}
	return Row{
		Unit:         col(ColUnit),
		KeyLevel:     col(ColKeyLevel),
		LocationName: col(ColLocationName),
		LastUpdated:  col(ColLastUpdated),
		SourceID:     col(ColSourceID),
		GeneratedAt:  col(ColGeneratedAt),
	}
}

// Snapshot is the ordered row set held by the remote store at the start of a pass.
type Snapshot struct {
	rows  []Row
	index map[string]int
}

// NewSnapshot builds a snapshot from rows in store order.
// A repeated unit keeps its first position and takes the later values.
// Rows with an empty unit collapse under the "" key like any other unit.
func NewSnapshot(rows []Row) *Snapshot {
	s := &Snapshot{index: make(map[string]int, len(rows))}
	for _, r := range rows {
		s.Add(r)
	}
	return s
}

// Add appends a row, or overwrites the row already stored for its unit.
func (s *Snapshot) Add(r Row) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[r.Unit]; ok {
		s.rows[i] = r
		return
	}
	s.index[r.Unit] = len(s.rows)
	s.rows = append(s.rows, r)
}

// Get returns the row stored for unit.
func (s *Snapshot) Get(unit string) (Row, bool) {
	if s == nil {
		return Row{}, false
	}
	i, ok := s.index[unit]
	if !ok {
		return Row{}, false
	}
	return s.rows[i], true
}

// Has reports whether unit is present.
func (s *Snapshot) Has(unit string) bool {
	_, ok := s.Get(unit)
	return ok
}

// Rows returns a copy of the rows in store order.
func (s *Snapshot) Rows() []Row {
	if s == nil {
		return nil
	}
	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}

// Len returns the number of rows.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rows)
}

// ActionType describes what the merge did with a unit.
type ActionType string

const (
	// ActionInsert adds a unit the remote store did not know.
	ActionInsert ActionType = "insert"
	// ActionUpdate replaces a remote row with newer local data.
	ActionUpdate ActionType = "update"
	// ActionKeep keeps a remote row that is as new or newer than the local one.
	ActionKeep ActionType = "keep"
	// ActionCarry carries over a remote row the local file does not mention.
	ActionCarry ActionType = "carry"
)

// Action records the decision taken for one unit.
type Action struct {
	Type ActionType `json:"type"`
	Unit string     `json:"unit"`

	// Local is the fresh timestamp, Remote the stored one. Empty for carries.
	Local  string `json:"local,omitempty"`
	Remote string `json:"remote,omitempty"`
}

// PlanSummary provides aggregate counts for a plan.
type PlanSummary struct {
	Fresh    int `json:"fresh"`
	Remote   int `json:"remote"`
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Kept     int `json:"kept"`
	Carried  int `json:"carried"`
	Total    int `json:"total"`
}

// Plan is the output of a merge: the full row set to write back plus the
// per-unit decisions that produced it.
type Plan struct {
	Rows    []Row       `json:"rows"`
	Actions []Action    `json:"actions"`
	Summary PlanSummary `json:"summary"`

	// Empty is set when there were no fresh records. An empty plan is never written.
	Empty bool `json:"empty"`

	// MergedAt is the wall clock time used for LastUpdated.
	MergedAt time.Time `json:"merged_at"`
}

// Changed reports whether the merge inserted or updated any row.
func (p *Plan) Changed() bool {
	return p != nil && (p.Summary.Inserted > 0 || p.Summary.Updated > 0)
}

// ApplyOptions controls ApplyPlan.
type ApplyOptions struct {
	// DryRun prevents the write.
	DryRun bool
}
