package dungeons_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"keys-monitor/feature/dungeons"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const dungeonsLua = `local _, addon = ...
local L = addon.L

DUNGEON_TABLE = {}
DUNGEON_TABLE[370] = L["Operation: Mechagon - Workshop"]
DUNGEON_TABLE[499]=L["Priory of the Sacred Flame"]
-- DUNGEON_TABLE[1] = "not localized"
DUNGEON_TABLE[542] = L["Eco-Dome Al'dani"]
`

func newServer(t *testing.T, status int, body string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewResolver_StartsWithFallback(t *testing.T) {
	r := dungeons.NewResolver("http://127.0.0.1:0", time.Second, zap.NewNop())

	assert.Equal(t, dungeons.SourceFallback, r.Source())
	assert.GreaterOrEqual(t, r.Len(), 8)
	assert.Equal(t, "Mechagon Workshop", r.Resolve(370))
}

func TestResolve_Unknown(t *testing.T) {
	r := dungeons.NewResolver("", time.Second, nil)
	assert.Equal(t, "Unknown (1234)", r.Resolve(1234))
	assert.Equal(t, r.Resolve(1234), r.Resolve(1234))
}

func TestRefresh_Success(t *testing.T) {
	srv := newServer(t, http.StatusOK, dungeonsLua)
	r := dungeons.NewResolver(srv.URL, time.Second, zap.NewNop())

	require.NoError(t, r.Refresh(context.Background()))

	assert.Equal(t, dungeons.SourceRemote, r.Source())
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, "Operation: Mechagon - Workshop", r.Resolve(370))
	assert.Equal(t, "Eco-Dome Al'dani", r.Resolve(542))
	assert.Equal(t, "Unknown (382)", r.Resolve(382), "remote list replaces the fallback wholesale")
}

func TestRefresh_FallsBack(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"NotFound", http.StatusNotFound, "missing"},
		{"ServerError", http.StatusInternalServerError, dungeonsLua},
		{"NoMatches", http.StatusOK, "return {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var broken atomic.Bool
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if broken.Load() {
					w.WriteHeader(tt.status)
					fmt.Fprint(w, tt.body)
					return
				}
				fmt.Fprint(w, dungeonsLua)
			}))
			defer srv.Close()

			r := dungeons.NewResolver(srv.URL, time.Second, zap.NewNop())
			require.NoError(t, r.Refresh(context.Background()))
			require.Equal(t, dungeons.SourceRemote, r.Source())

			broken.Store(true)
			err := r.Refresh(context.Background())

			assert.Error(t, err)
			assert.Equal(t, dungeons.SourceFallback, r.Source())
			assert.Equal(t, "Theater of Pain", r.Resolve(382))
		})
	}
}

func TestRefresh_NetworkError(t *testing.T) {
	srv := newServer(t, http.StatusOK, dungeonsLua)
	url := srv.URL
	srv.Close()

	r := dungeons.NewResolver(url, time.Second, zap.NewNop())
	err := r.Refresh(context.Background())

	assert.Error(t, err)
	assert.Equal(t, dungeons.FallbackNames(), r.Snapshot())
}

func TestRefresh_ConcurrentReadersSeeWholeTables(t *testing.T) {
	srv := newServer(t, http.StatusOK, dungeonsLua)
	r := dungeons.NewResolver(srv.URL, time.Second, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = r.Refresh(context.Background())
		}()
		go func() {
			defer wg.Done()
			name := r.Resolve(370)
			assert.True(t, name == "Mechagon Workshop" || name == "Operation: Mechagon - Workshop", name)
		}()
	}
	wg.Wait()
	assert.Equal(t, dungeons.SourceRemote, r.Source())
}

func TestParseNames(t *testing.T) {
	names, err := dungeons.ParseNames(strings.NewReader(dungeonsLua))
	require.NoError(t, err)
	assert.Equal(t, map[int]string{
		370: "Operation: Mechagon - Workshop",
		499: "Priory of the Sacred Flame",
		542: "Eco-Dome Al'dani",
	}, names)
}
