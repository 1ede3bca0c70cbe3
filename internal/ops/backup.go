// Package ops holds the offline tooling for company data: tar.gz backups of
// the data directory and integrity checks against the save inside it.
package ops

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kfiggins/pest-control-empire/internal/save"
)

// Backup archives dataDir into a gzipped tarball at archivePath. Entry names
// are stored relative to dataDir so the archive restores anywhere.
func Backup(dataDir, archivePath string) error {
	dataDir = filepath.Clean(strings.TrimSpace(dataDir))
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	if dataDir == "" || archivePath == "" {
		return fmt.Errorf("dataDir and archivePath are required")
	}
	info, err := os.Stat(dataDir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("data path is not a directory: %s", dataDir)
	}
	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	defer gz.Close()

	tw := tar.NewWriter(gz)
	defer tw.Close()

	return filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == dataDir {
			return nil
		}
		// Symlinks and other specials don't belong in a save backup.
		if !d.IsDir() && !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(dataDir, path)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if info.IsDir() && !strings.HasSuffix(hdr.Name, "/") {
			hdr.Name += "/"
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(tw, src)
		return err
	})
}

// Restore unpacks a backup archive into targetDir, creating it if needed.
// Entries that would escape targetDir are rejected.
func Restore(archivePath, targetDir string) error {
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	targetDir = filepath.Clean(strings.TrimSpace(targetDir))
	if archivePath == "" || targetDir == "" {
		return fmt.Errorf("archivePath and targetDir are required")
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return err
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		rel, err := safeRelPath(hdr.Name)
		if err != nil {
			return err
		}
		outPath := filepath.Join(targetDir, rel)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(outPath, os.FileMode(hdr.Mode)); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return err
			}
			dst, err := os.OpenFile(outPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(hdr.Mode))
			if err != nil {
				return err
			}
			if _, err := io.Copy(dst, tr); err != nil {
				_ = dst.Close()
				return err
			}
			if err := dst.Close(); err != nil {
				return err
			}
		default:
			// Skip anything that isn't a file or directory.
		}
	}
}

func safeRelPath(name string) (string, error) {
	name = filepath.Clean(strings.TrimSpace(name))
	if name == "" || name == "." {
		return "", fmt.Errorf("empty archive entry path")
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("absolute archive entry path: %s", name)
	}
	if name == ".." || strings.HasPrefix(name, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry escapes target: %s", name)
	}
	return name, nil
}

// SaveSummary is what Inspect reports about the save in a data directory.
type SaveSummary struct {
	Week      int `json:"week"`
	Money     int `json:"money"`
	Clients   int `json:"clients"`
	Employees int `json:"employees"`
}

// Inspect opens the save store in dataDir with the given backend ("file" or
// "sqlite"), loads the state, and summarizes it. Used by the restore drill to
// prove a backup actually contains a playable company.
func Inspect(dataDir, backend string) (*SaveSummary, error) {
	store, err := OpenStore(dataDir, backend)
	if err != nil {
		return nil, err
	}
	defer CloseStore(store)

	st, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &SaveSummary{
		Week:      st.Week,
		Money:     st.Money,
		Clients:   len(st.Clients),
		Employees: len(st.Employees),
	}, nil
}

// OpenStore builds the save store for a data directory.
func OpenStore(dataDir, backend string) (save.Store, error) {
	switch backend {
	case "", "file":
		return save.NewFileStore(dataDir)
	case "sqlite":
		return save.NewSQLiteStore(dataDir)
	default:
		return nil, fmt.Errorf("unknown save backend %q", backend)
	}
}

// CloseStore closes the store if the backend holds resources open.
func CloseStore(store save.Store) {
	if c, ok := store.(io.Closer); ok {
		_ = c.Close()
	}
}
