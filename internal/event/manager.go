package event

import (
	"math/rand"

	"github.com/kfiggins/pest-control-empire/internal/sim"
)

// Active is the triggered event shown to the player until the next turn's
// cleanup or an explicit dismiss.
type Active struct {
	ID           ID      `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Kind         Kind    `json:"kind"`
	Message      string  `json:"message"`
	Week         int     `json:"week"`
	Discount     float64 `json:"discount,omitempty"`
	SickEmployee string  `json:"sick_employee,omitempty"`
}

// HistoryEntry is one immutable line in the event log.
type HistoryEntry struct {
	EventID ID     `json:"event_id"`
	Week    int    `json:"week"`
	Message string `json:"message"`
}

// Manager runs the per-turn event state machine:
// Idle -> Candidate-Evaluation -> (Triggered | None) -> Cleanup next turn.
type Manager struct {
	defs         []Def
	chanceMult   float64
	seasonalMult float64

	active  *Active
	history []HistoryEntry
}

// NewManager wires the catalog with the difficulty and seasonal multipliers.
func NewManager(chanceMult, seasonalMult float64) *Manager {
	return &Manager{defs: Catalog, chanceMult: chanceMult, seasonalMult: seasonalMult}
}

// Cleanup runs at the start of event processing, before the new candidate
// evaluation. It expires the previous turn's active event and hands parked
// rosters back to recovered employees.
func (m *Manager) Cleanup(st *sim.State) {
	m.active = nil
	for _, e := range st.Employees {
		e.Recover()
	}
}

// Check evaluates candidates in declaration order and returns the first
// whose trial succeeds, or nil. roll decides each independent trial, which
// keeps the first-match policy scriptable in tests.
func (m *Manager) Check(st *sim.State, roll func(chance float64) bool) *Def {
	for i := range m.defs {
		d := &m.defs[i]
		if d.MinWeek > 0 && st.Week < d.MinWeek {
			continue
		}
		if d.RequiresClients && len(st.Clients) == 0 {
			continue
		}
		if d.RequiresEmployees && len(st.Employees) == 0 {
			continue
		}
		if d.RequiresTrucks && len(st.Trucks) == 0 {
			continue
		}
		chance := d.BaseChance * m.chanceMult
		if d.Seasonal && surgeSeason(st.Week) {
			chance *= m.seasonalMult
		}
		if roll(chance) {
			return d
		}
	}
	return nil
}

// Trigger applies the effect. A successful outcome becomes the active event
// and an immutable history entry; a failed one leaves no trace.
func (m *Manager) Trigger(st *sim.State, d *Def, rng *rand.Rand) *Active {
	if d == nil {
		return nil
	}
	out := d.Effect(st, rng)
	if !out.OK {
		return nil
	}
	m.active = &Active{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		Kind:         d.Kind,
		Message:      out.Message,
		Week:         st.Week,
		Discount:     out.Discount,
		SickEmployee: out.SickEmployee,
	}
	m.history = append(m.history, HistoryEntry{EventID: d.ID, Week: st.Week, Message: out.Message})
	return m.active
}

// Active returns the current event, or nil.
func (m *Manager) Active() *Active {
	return m.active
}

// Dismiss clears the active event without waiting for cleanup.
func (m *Manager) Dismiss() {
	m.active = nil
}

// Discount is the equipment price cut from the active event, 0 when none.
func (m *Manager) Discount() float64 {
	if m.active == nil {
		return 0
	}
	return m.active.Discount
}

// History returns a copy of the event log.
func (m *Manager) History() []HistoryEntry {
	return append([]HistoryEntry(nil), m.history...)
}
