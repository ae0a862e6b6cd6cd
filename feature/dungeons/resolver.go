package dungeons

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultSourceURL is the AstralKeys dungeon list on GitHub.
const DefaultSourceURL = "https://raw.githubusercontent.com/astralguild/AstralKeys/refs/heads/main/Dungeons.lua"

// Source names reported by Resolver.Source.
const (
	SourceFallback = "fallback"
	SourceRemote   = "remote"
)

// ErrNoEntries is returned when the source parsed but held no dungeon lines.
var ErrNoEntries = errors.New("no dungeon entries found")

var entryPattern = regexp.MustCompile(`DUNGEON_TABLE\[(\d+)\]\s*=\s*L\["([^"]+)"\]`)

// fallbackNames are used until a refresh succeeds, and whenever one fails.
var fallbackNames = map[int]string{
	370: "Mechagon Workshop",
	382: "Theater of Pain",
	499: "Priory of the Sacred Flame",
	500: "The Rookery",
	504: "Darkflame Cleft",
	506: "Cinderbrew Meadery",
	525: "Operation: Floodgate",
	247: "The MOTHERLODE!!",
}

// table is an immutable id -> name mapping. It is swapped whole, never edited.
type table struct {
	names     map[int]string
	source    string
	refreshed time.Time
}

// Resolver maps dungeon ids to names.
type Resolver struct {
	url    string
	client *http.Client
	logger *zap.Logger

	current atomic.Pointer[table]
	sf      singleflight.Group
}

// NewResolver creates a resolver reading from url. It starts out with the
// fallback table, so Resolve works before the first refresh.
func NewResolver(url string, timeout time.Duration, logger *zap.Logger) *Resolver {
	if url == "" {
		url = DefaultSourceURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Resolver{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
	r.useFallback()
	return r
}

// Resolve returns the dungeon name, or "Unknown (<id>)".
func (r *Resolver) Resolve(id int) string {
	if name, ok := r.current.Load().names[id]; ok {
		return name
	}
	return fmt.Sprintf("Unknown (%d)", id)
}

// Snapshot returns a copy of the current mapping.
func (r *Resolver) Snapshot() map[int]string {
	names := r.current.Load().names
	out := make(map[int]string, len(names))
	for id, name := range names {
		out[id] = name
	}
	return out
}

// Source reports whether the current mapping came from the remote list or the fallback.
func (r *Resolver) Source() string {
	return r.current.Load().source
}

// RefreshedAt returns when the current mapping was installed.
func (r *Resolver) RefreshedAt() time.Time {
	return r.current.Load().refreshed
}

// Len returns the number of known dungeons.
func (r *Resolver) Len() int {
	return len(r.current.Load().names)
}

// Refresh fetches the dungeon list and replaces the mapping.
// On any failure the fallback table is installed and the error returned for
// logging; the resolver is usable either way. Concurrent calls share one fetch.
func (r *Resolver) Refresh(ctx context.Context) error {
	_, err, _ := r.sf.Do(r.url, func() (interface{}, error) {
		return nil, r.refresh(ctx)
	})
	return err
}

func (r *Resolver) refresh(ctx context.Context) error {
	r.logger.Info("Fetching dungeon names", zap.String("url", r.url))

	names, err := r.fetch(ctx)
	if err != nil {
		r.logger.Warn("Using fallback dungeon names", zap.Error(err))
		r.useFallback()
		return err
	}

	r.current.Store(&table{names: names, source: SourceRemote, refreshed: time.Now()})
	r.logger.Info("Loaded dungeon names", zap.Int("count", len(names)))
	return nil
}

func (r *Resolver) fetch(ctx context.Context) (map[int]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dungeon list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch dungeon list: HTTP %d", resp.StatusCode)
	}

	names, err := ParseNames(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrNoEntries
	}
	return names, nil
}

func (r *Resolver) useFallback() {
	names := make(map[int]string, len(fallbackNames))
	for id, name := range fallbackNames {
		names[id] = name
	}
	r.current.Store(&table{names: names, source: SourceFallback, refreshed: time.Now()})
}

// ParseNames scans Lua source line by line for DUNGEON_TABLE[<id>] = L["<name>"].
// Lines that do not match are ignored.
func ParseNames(src io.Reader) (map[int]string, error) {
	names := make(map[int]string)
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "DUNGEON_TABLE") {
			continue
		}
		m := entryPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		names[id] = m[2]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dungeon list: %w", err)
	}
	return names, nil
}

// FallbackNames returns a copy of the built-in table.
func FallbackNames() map[int]string {
	out := make(map[int]string, len(fallbackNames))
	for id, name := range fallbackNames {
		out[id] = name
	}
	return out
}
