package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kfiggins/pest-control-empire/internal/config"
	"github.com/kfiggins/pest-control-empire/internal/game"
	"github.com/kfiggins/pest-control-empire/internal/save"
	"github.com/kfiggins/pest-control-empire/internal/sim"
	"github.com/kfiggins/pest-control-empire/internal/telemetry"
)

func newTestServer(t *testing.T) (http.Handler, *game.Engine) {
	t.Helper()

	bal := config.Default()
	bal.EventChanceMultiplier = 0
	bal.ReferralChance = 0
	bal.StartingCash = 20000

	store, err := save.NewFileStore(t.TempDir())
	require.NoError(t, err)
	actionLog := telemetry.NewLog(200)
	logger := log.New(io.Discard, "", 0)

	engine := game.New(bal, 1, store, actionLog, logger)
	engine.NewGame()
	return New(engine, actionLog, store, logger), engine
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestStateEndpoint(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/api/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var st sim.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, 1, st.Week)
	assert.Equal(t, 20000, st.Money)
	require.Len(t, st.Employees, 1)
	assert.Equal(t, "You (Owner)", st.Employees[0].Name)
}

func TestCatalogEndpoint(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/api/catalog", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Archetypes []struct {
			ID       string `json:"id"`
			NextCost int    `json:"next_cost"`
		} `json:"archetypes"`
		Tiers     []json.RawMessage `json:"tiers"`
		Equipment []json.RawMessage `json:"equipment"`
		Upgrades  []json.RawMessage `json:"upgrades"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Archetypes, 4)
	assert.Len(t, body.Tiers, 4)
	assert.Len(t, body.Equipment, 6)
	assert.Len(t, body.Upgrades, 12)
	assert.Equal(t, "residential", body.Archetypes[0].ID)
	assert.Equal(t, 200, body.Archetypes[0].NextCost)
}

func TestCommandFlow(t *testing.T) {
	h, engine := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/clients/acquire", map[string]string{"archetype": "residential"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	ownerID := engine.State().Employees[0].ID
	rec = doJSON(t, h, http.MethodPost, "/api/employees/"+ownerID+"/assign", map[string]string{"client_id": created.ID})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/turn", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var res game.TurnResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 1, res.Week)
	assert.Equal(t, 360, res.Revenue)
	assert.Equal(t, 1, res.JobsCompleted)

	rec = doJSON(t, h, http.MethodGet, "/api/log", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Week 1 complete")
}

func TestCommandErrorsMapToStatuses(t *testing.T) {
	h, engine := newTestServer(t)
	ownerID := engine.State().Employees[0].ID

	rec := doJSON(t, h, http.MethodPost, "/api/employees/missing/assign", map[string]string{"client_id": "nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/equipment/advanced_sprayer/purchase", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/employees/"+ownerID+"/promote", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Burn through the bankroll; the first unaffordable hire is a 422.
	got422 := false
	for i := 0; i < 10; i++ {
		rec = doJSON(t, h, http.MethodPost, "/api/employees/hire", map[string]string{"tier": "expert"})
		if rec.Code == http.StatusUnprocessableEntity {
			got422 = true
			break
		}
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	assert.True(t, got422)
}

func TestInvalidJSONBodyRejected(t *testing.T) {
	h, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/clients/acquire", strings.NewReader("{broken"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAutomationRoundTrip(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doJSON(t, h, http.MethodPut, "/api/automation", sim.AutomationSettings{
		AutoAssign:     true,
		HireCashBuffer: 5000,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/automation", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var a sim.AutomationSettings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.True(t, a.AutoAssign)
	assert.Equal(t, 5000, a.HireCashBuffer)
}

func TestEventEndpoints(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/api/event", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"active": null}`, rec.Body.String())

	rec = doJSON(t, h, http.MethodPost, "/api/event/dismiss", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/events/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSaveExportImport(t *testing.T) {
	h, engine := newTestServer(t)

	_, err := engine.ExecuteTurn()
	require.NoError(t, err)

	rec := doJSON(t, h, http.MethodGet, "/api/save/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	blob := rec.Body.Bytes()

	var env save.Envelope
	require.NoError(t, json.Unmarshal(blob, &env))
	assert.Equal(t, save.Version, env.Version)

	// Reset, then import the exported save and land back on week 2.
	rec = doJSON(t, h, http.MethodPost, "/api/new-game", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, engine.State().Week)

	req := httptest.NewRequest(http.MethodPost, "/api/save/import", bytes.NewReader(blob))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 2, engine.State().Week)

	req = httptest.NewRequest(http.MethodPost, "/api/save/import", strings.NewReader("junk"))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTurnAfterGameOverConflicts(t *testing.T) {
	h, engine := newTestServer(t)

	// Run the company into the ground.
	for {
		res, err := engine.ExecuteTurn()
		require.NoError(t, err)
		if res.GameOver {
			break
		}
	}

	rec := doJSON(t, h, http.MethodPost, "/api/turn", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
