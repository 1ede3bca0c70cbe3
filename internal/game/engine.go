package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/kfiggins/pest-control-empire/internal/catalog"
	"github.com/kfiggins/pest-control-empire/internal/config"
	"github.com/kfiggins/pest-control-empire/internal/employee"
	"github.com/kfiggins/pest-control-empire/internal/event"
	"github.com/kfiggins/pest-control-empire/internal/save"
	"github.com/kfiggins/pest-control-empire/internal/sim"
	"github.com/kfiggins/pest-control-empire/internal/telemetry"
)

var (
	ErrGameOver          = errors.New("game: game is over")
	ErrInsufficientFunds = errors.New("game: insufficient funds")
	ErrNotFound          = errors.New("game: no such entity")
	ErrAtCapacity        = errors.New("game: employee is at full capacity")
	ErrAlreadyAssigned   = errors.New("game: employee already assigned to client")
	ErrNotAssigned       = errors.New("game: employee not assigned to client")
	ErrPrerequisites     = errors.New("game: prerequisites not met or already owned")
	ErrNotPromotable     = errors.New("game: employee cannot be promoted")
)

// Engine owns the game state and is its single writer. Player commands and
// the weekly turn serialize on one mutex; readers get deep clones.
type Engine struct {
	mu sync.Mutex

	st     *sim.State
	bal    config.Balance
	rng    *rand.Rand
	events *event.Manager
	log    *telemetry.Log
	store  save.Store
	logger *log.Logger
}

func New(bal config.Balance, seed int64, store save.Store, actionLog *telemetry.Log, logger *log.Logger) *Engine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		bal:    bal,
		rng:    rand.New(rand.NewSource(seed)),
		events: event.NewManager(bal.EventChanceMultiplier, bal.SeasonalEventMultiplier),
		log:    actionLog,
		store:  store,
		logger: logger,
	}
}

// InitOrLoad resumes the stored game if one exists, otherwise starts fresh.
// A corrupt save is discarded rather than wedging startup.
func (e *Engine) InitOrLoad() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.store != nil {
		st, err := e.store.Load()
		if err == nil {
			e.st = st
			e.record(telemetry.KindSystem, "Resumed saved game at week %d", st.Week)
			return nil
		}
		if !errors.Is(err, save.ErrNoSave) {
			e.logger.Printf("save load failed, starting new game: %v", err)
		}
	}
	e.newGameLocked()
	return nil
}

// NewGame discards everything and starts over.
func (e *Engine) NewGame() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.newGameLocked()
}

func (e *Engine) newGameLocked() {
	if e.store != nil {
		if err := e.store.Delete(); err != nil {
			e.logger.Printf("delete save: %v", err)
		}
	}
	e.st = &sim.State{
		Week:  1,
		Money: e.bal.StartingCash,
		Automation: sim.AutomationSettings{
			HireCashBuffer:    e.bal.HireCashBuffer,
			PromoteCashBuffer: e.bal.PromoteCashBuffer,
		},
	}

	// The player starts as a working Junior with a truck.
	owner := employee.New(newID(), "You (Owner)", catalog.Junior)
	truck := employee.NewTruck(newID(), owner.ID)
	owner.TruckID = truck.ID
	e.st.Employees = append(e.st.Employees, owner)
	e.st.Trucks = append(e.st.Trucks, truck)

	e.events = event.NewManager(e.bal.EventChanceMultiplier, e.bal.SeasonalEventMultiplier)
	if e.log != nil {
		e.log.Clear()
	}
	e.record(telemetry.KindSystem, "New game started with %s", FormatMoney(e.st.Money))
}

// State returns a deep clone for read-only use.
func (e *Engine) State() *sim.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.Clone()
}

// ActiveEvent returns the current event, or nil.
func (e *Engine) ActiveEvent() *event.Active {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.events.Active()
}

// DismissEvent clears the active event banner.
func (e *Engine) DismissEvent() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events.Dismiss()
}

// EventHistory returns the immutable event log.
func (e *Engine) EventHistory() []event.HistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.events.History()
}

// Save persists the current state.
func (e *Engine) Save() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.store == nil {
		return nil
	}
	return e.store.Save(e.st)
}

// SetAutomation replaces the player automation toggles and buffers.
func (e *Engine) SetAutomation(a sim.AutomationSettings) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if a.HireCashBuffer < 0 {
		a.HireCashBuffer = 0
	}
	if a.PromoteCashBuffer < 0 {
		a.PromoteCashBuffer = 0
	}
	e.st.Automation = a
	e.record(telemetry.KindAutomation, "Automation settings updated")
}

func (e *Engine) autosave() {
	if e.store == nil {
		return
	}
	if err := e.store.Save(e.st); err != nil {
		e.logger.Printf("autosave: %v", err)
	}
}

func (e *Engine) record(kind telemetry.Kind, format string, args ...any) {
	if e.log == nil {
		return
	}
	week := 0
	if e.st != nil {
		week = e.st.Week
	}
	e.log.Record(week, kind, fmt.Sprintf(format, args...))
}

func newID() string {
	return uuid.NewString()
}

// FormatMoney renders an amount for log lines, e.g. $12,500 or -$300.
func FormatMoney(amount int) string {
	if amount < 0 {
		return "-$" + humanize.Comma(int64(-amount))
	}
	return "$" + humanize.Comma(int64(amount))
}
