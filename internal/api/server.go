package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kfiggins/pest-control-empire/internal/catalog"
	"github.com/kfiggins/pest-control-empire/internal/game"
	"github.com/kfiggins/pest-control-empire/internal/httpmw"
	"github.com/kfiggins/pest-control-empire/internal/save"
	"github.com/kfiggins/pest-control-empire/internal/sim"
	"github.com/kfiggins/pest-control-empire/internal/telemetry"
)

// Server exposes the engine's command surface over HTTP and pushes state
// updates to websocket subscribers.
type Server struct {
	engine *game.Engine
	log    *telemetry.Log
	store  save.Store
	hub    *Hub
	logger *log.Logger
}

func New(engine *game.Engine, actionLog *telemetry.Log, store save.Store, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		engine: engine,
		log:    actionLog,
		store:  store,
		hub:    NewHub(logger),
		logger: logger,
	}

	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Get("/catalog", s.handleCatalog)
		r.Get("/log", s.handleLog)
		r.Get("/log/stats", s.handleLogStats)

		r.Get("/event", s.handleActiveEvent)
		r.Post("/event/dismiss", s.handleDismissEvent)
		r.Get("/events/history", s.handleEventHistory)

		r.Post("/turn", s.handleTurn)
		r.Post("/new-game", s.handleNewGame)

		r.Post("/clients/acquire", s.handleAcquireClient)
		r.Post("/employees/hire", s.handleHireEmployee)
		r.Post("/employees/{id}/assign", s.handleAssign)
		r.Post("/employees/{id}/unassign", s.handleUnassign)
		r.Post("/employees/{id}/promote", s.handlePromote)

		r.Post("/equipment/{id}/purchase", s.handlePurchaseEquipment)
		r.Post("/upgrades/{id}/purchase", s.handlePurchaseUpgrade)

		r.Get("/automation", s.handleGetAutomation)
		r.Put("/automation", s.handlePutAutomation)

		r.Post("/save", s.handleSave)
		r.Get("/save/export", s.handleExport)
		r.Post("/save/import", s.handleImport)
	})

	r.Get("/ws", s.hub.ServeWS)

	return httpmw.Chain(r,
		httpmw.WithRequestID,
		httpmw.WithRecover(logger),
		httpmw.WithAccessLog(logger),
	)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.engine == nil {
		writeError(w, http.StatusServiceUnavailable, "engine not ready")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	type archetypeEntry struct {
		ID catalog.Archetype `json:"id"`
		catalog.ArchetypeInfo
		NextCost int `json:"next_cost"`
	}
	archetypes := make([]archetypeEntry, 0, len(catalog.Archetypes))
	for _, a := range catalog.Archetypes {
		archetypes = append(archetypes, archetypeEntry{
			ID:            a,
			ArchetypeInfo: a.Info(),
			NextCost:      s.engine.AcquisitionCost(a),
		})
	}

	type tierEntry struct {
		ID catalog.Tier `json:"id"`
		catalog.TierInfo
	}
	tiers := make([]tierEntry, 0, len(catalog.Tiers))
	for _, tr := range catalog.Tiers {
		tiers = append(tiers, tierEntry{ID: tr, TierInfo: tr.Info()})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"archetypes": archetypes,
		"tiers":      tiers,
		"equipment":  catalog.AllEquipment(),
		"upgrades":   catalog.AllUpgrades(),
	})
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	sinceWeek := queryInt(r, "since_week")
	var kinds []telemetry.Kind
	for _, k := range r.URL.Query()["kind"] {
		kinds = append(kinds, telemetry.Kind(k))
	}
	writeJSON(w, http.StatusOK, s.log.Entries(sinceWeek, kinds))
}

func (s *Server) handleLogStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, telemetry.CalculateStats(s.log.Entries(0, nil)))
}

func (s *Server) handleActiveEvent(w http.ResponseWriter, r *http.Request) {
	a := s.engine.ActiveEvent()
	if a == nil {
		writeJSON(w, http.StatusOK, map[string]any{"active": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"active": a})
}

func (s *Server) handleDismissEvent(w http.ResponseWriter, r *http.Request) {
	s.engine.DismissEvent()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEventHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.EventHistory())
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	res, err := s.engine.ExecuteTurn()
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	s.broadcastState()
	if res.Event != nil {
		s.hub.Broadcast("event", res.Event)
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	s.engine.NewGame()
	s.broadcastState()
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleAcquireClient(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Archetype catalog.Archetype `json:"archetype"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := s.engine.AcquireClient(req.Archetype)
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	s.broadcastState()
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleHireEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tier string `json:"tier"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	tier, haveTier := catalog.ParseTier(req.Tier)
	emp, err := s.engine.HireEmployee(tier, haveTier)
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	s.broadcastState()
	writeJSON(w, http.StatusCreated, emp)
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	s.assignment(w, r, s.engine.AssignEmployee)
}

func (s *Server) handleUnassign(w http.ResponseWriter, r *http.Request) {
	s.assignment(w, r, s.engine.UnassignEmployee)
}

func (s *Server) assignment(w http.ResponseWriter, r *http.Request, op func(employeeID, clientID string) error) {
	var req struct {
		ClientID string `json:"client_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := op(chi.URLParam(r, "id"), req.ClientID); err != nil {
		s.writeCommandError(w, err)
		return
	}
	s.broadcastState()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePromote(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.PromoteEmployee(chi.URLParam(r, "id")); err != nil {
		s.writeCommandError(w, err)
		return
	}
	s.broadcastState()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePurchaseEquipment(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.PurchaseEquipment(catalog.EquipmentID(chi.URLParam(r, "id"))); err != nil {
		s.writeCommandError(w, err)
		return
	}
	s.broadcastState()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePurchaseUpgrade(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.PurchaseUpgrade(catalog.UpgradeID(chi.URLParam(r, "id"))); err != nil {
		s.writeCommandError(w, err)
		return
	}
	s.broadcastState()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetAutomation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.State().Automation)
}

func (s *Server) handlePutAutomation(w http.ResponseWriter, r *http.Request) {
	var req sim.AutomationSettings
	if !decodeBody(w, r, &req) {
		return
	}
	s.engine.SetAutomation(req)
	s.broadcastState()
	writeJSON(w, http.StatusOK, s.engine.State().Automation)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Save(); err != nil {
		writeError(w, http.StatusInternalServerError, "save failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "no save backend")
		return
	}
	// Export the latest state, not a stale file.
	if err := s.engine.Save(); err != nil {
		writeError(w, http.StatusInternalServerError, "save failed")
		return
	}
	blob, err := s.store.Export()
	if err != nil {
		if errors.Is(err, save.ErrNoSave) {
			writeError(w, http.StatusNotFound, "no save to export")
			return
		}
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="pest-control-empire-save.json"`)
	_, _ = w.Write(blob)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "no save backend")
		return
	}
	blob, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 10<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read body")
		return
	}
	if err := s.store.Import(blob); err != nil {
		writeError(w, http.StatusBadRequest, "invalid save payload")
		return
	}
	if err := s.engine.InitOrLoad(); err != nil {
		writeError(w, http.StatusInternalServerError, "load failed")
		return
	}
	s.broadcastState()
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) broadcastState() {
	s.hub.Broadcast("state", s.engine.State())
}

// writeCommandError maps engine rejections onto HTTP statuses.
func (s *Server) writeCommandError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrGameOver):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, game.ErrAtCapacity),
		errors.Is(err, game.ErrAlreadyAssigned),
		errors.Is(err, game.ErrNotAssigned),
		errors.Is(err, game.ErrPrerequisites),
		errors.Is(err, game.ErrNotPromotable):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.Printf("command failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return false
	}
	return true
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
