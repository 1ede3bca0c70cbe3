package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kfiggins/pest-control-empire/internal/api"
	"github.com/kfiggins/pest-control-empire/internal/config"
	"github.com/kfiggins/pest-control-empire/internal/game"
	"github.com/kfiggins/pest-control-empire/internal/ops"
	"github.com/kfiggins/pest-control-empire/internal/sim"
	"github.com/kfiggins/pest-control-empire/internal/telemetry"
)

// testApp wires the stack exactly the way main does, against a throwaway
// data directory.
type testApp struct {
	handler http.Handler
	engine  *game.Engine
	dataDir string
	backend string
}

func newTestApp(t *testing.T, dataDir, backend string) *testApp {
	t.Helper()

	cfg := &config.Config{}
	cfg.ApplyDefaults()
	cfg.Data.Dir = dataDir
	cfg.Data.SaveBackend = backend
	cfg.Game.Seed = 1
	cfg.Balance.EventChanceMultiplier = 0
	cfg.Balance.ReferralChance = 0
	cfg.Balance.StartingCash = 20000

	store, err := ops.OpenStore(cfg.Data.Dir, cfg.Data.SaveBackend)
	require.NoError(t, err)
	t.Cleanup(func() { ops.CloseStore(store) })

	logger := log.New(io.Discard, "", 0)
	actionLog := telemetry.NewLog(cfg.Server.LogLimit)
	engine := game.New(cfg.Balance, cfg.Game.Seed, store, actionLog, logger)
	require.NoError(t, engine.InitOrLoad())

	return &testApp{
		handler: api.New(engine, actionLog, store, logger),
		engine:  engine,
		dataDir: dataDir,
		backend: backend,
	}
}

func (a *testApp) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func TestServerPlaysAndResumesAcrossRestart(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			dataDir := t.TempDir()
			app := newTestApp(t, dataDir, backend)

			rec := app.do(t, http.MethodPost, "/api/clients/acquire", map[string]string{"archetype": "commercial"})
			require.Equal(t, http.StatusCreated, rec.Code)
			var created struct {
				ID string `json:"id"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

			ownerID := app.engine.State().Employees[0].ID
			rec = app.do(t, http.MethodPost, "/api/employees/"+ownerID+"/assign", map[string]string{"client_id": created.ID})
			require.Equal(t, http.StatusNoContent, rec.Code)

			for i := 0; i < 3; i++ {
				rec = app.do(t, http.MethodPost, "/api/turn", nil)
				require.Equal(t, http.StatusOK, rec.Code)
			}

			var before sim.State
			rec = app.do(t, http.MethodGet, "/api/state", nil)
			require.Equal(t, http.StatusOK, rec.Code)
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &before))
			assert.Equal(t, 4, before.Week)

			// A second app over the same data dir is a process restart.
			resumed := newTestApp(t, dataDir, backend)
			var after sim.State
			rec = resumed.do(t, http.MethodGet, "/api/state", nil)
			require.Equal(t, http.StatusOK, rec.Code)
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &after))

			assert.Equal(t, before.Week, after.Week)
			assert.Equal(t, before.Money, after.Money)
			assert.Len(t, after.Clients, 1)
		})
	}
}

func TestServerBackupDrillOnLiveData(t *testing.T) {
	dataDir := t.TempDir()
	app := newTestApp(t, dataDir, "file")

	rec := app.do(t, http.MethodPost, "/api/turn", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	archive := t.TempDir() + "/drill.tar.gz"
	restoreDir := t.TempDir() + "/restored"
	require.NoError(t, ops.Backup(dataDir, archive))
	require.NoError(t, ops.Restore(archive, restoreDir))

	sum, err := ops.Inspect(restoreDir, "file")
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Week)
	assert.Equal(t, 1, sum.Employees)
}

func TestServerRequestIDOnEveryResponse(t *testing.T) {
	app := newTestApp(t, t.TempDir(), "file")

	rec := app.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = app.do(t, http.MethodGet, "/api/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
