package save

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/kfiggins/pest-control-empire/internal/sim"
)

// SQLiteStore keeps the save envelope in a single-row saves table. One game
// per database; slot 1 is the only slot.
type SQLiteStore struct {
	db *sqlx.DB
}

const saveSlot = 1

func NewSQLiteStore(dataDir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dataDir, "save.db")
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		slot INTEGER PRIMARY KEY,
		envelope TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Save(st *sim.State) error {
	b, err := json.Marshal(newEnvelope(st))
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO saves (slot, envelope) VALUES (?, ?)
		 ON CONFLICT(slot) DO UPDATE SET envelope = excluded.envelope`,
		saveSlot, string(b),
	)
	return err
}

func (s *SQLiteStore) Load() (*sim.State, error) {
	b, err := s.raw()
	if err != nil {
		return nil, err
	}
	return decodeEnvelope(b)
}

func (s *SQLiteStore) Has() (bool, error) {
	var n int
	if err := s.db.Get(&n, `SELECT COUNT(*) FROM saves WHERE slot = ?`, saveSlot); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) Delete() error {
	_, err := s.db.Exec(`DELETE FROM saves WHERE slot = ?`, saveSlot)
	return err
}

func (s *SQLiteStore) Export() ([]byte, error) {
	return s.raw()
}

func (s *SQLiteStore) Import(data []byte) error {
	if _, err := decodeEnvelope(data); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`INSERT INTO saves (slot, envelope) VALUES (?, ?)
		 ON CONFLICT(slot) DO UPDATE SET envelope = excluded.envelope`,
		saveSlot, string(data),
	)
	return err
}

func (s *SQLiteStore) raw() ([]byte, error) {
	var envelope string
	err := s.db.Get(&envelope, `SELECT envelope FROM saves WHERE slot = ?`, saveSlot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, err
	}
	return []byte(envelope), nil
}
