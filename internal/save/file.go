package save

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/kfiggins/pest-control-empire/internal/sim"
)

// FileStore keeps the save envelope as one JSON file in the data dir.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{path: filepath.Join(dataDir, "save.json")}, nil
}

func (s *FileStore) Save(st *sim.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.MarshalIndent(newEnvelope(st), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

func (s *FileStore) Load() (*sim.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSave
		}
		return nil, err
	}
	return decodeEnvelope(b)
}

func (s *FileStore) Has() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := os.Stat(s.path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *FileStore) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ErrNoSave
	}
	return b, err
}

// Import validates the payload before overwriting the current save.
func (s *FileStore) Import(data []byte) error {
	if _, err := decodeEnvelope(data); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(s.path, data, 0o644)
}
