package save

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/kfiggins/pest-control-empire/internal/sim"
)

// Version identifies the envelope layout.
const Version = "1.0"

var (
	ErrNoSave     = errors.New("save: no save present")
	ErrBadPayload = errors.New("save: payload is not a valid save")
)

// Envelope wraps the state snapshot for persistence and export.
type Envelope struct {
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	State     *sim.State `json:"state"`
}

// Store persists one game. Load returns ErrNoSave when nothing is saved.
type Store interface {
	Save(st *sim.State) error
	Load() (*sim.State, error)
	Has() (bool, error)
	Delete() error
	Export() ([]byte, error)
	Import(data []byte) error
}

func newEnvelope(st *sim.State) Envelope {
	return Envelope{Version: Version, Timestamp: time.Now().UTC(), State: st}
}

func decodeEnvelope(b []byte) (*sim.State, error) {
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, ErrBadPayload
	}
	if env.Version == "" || env.State == nil {
		return nil, ErrBadPayload
	}
	return env.State, nil
}
