package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// FilePersistence stores records as a JSON array in a single file.
type FilePersistence struct {
	mu   sync.Mutex
	path string
}

// NewFilePersistence creates a file-backed persistence, creating the parent
// directory if needed.
func NewFilePersistence(path string) (*FilePersistence, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FilePersistence{path: path}, nil
}

// Load reads the records file. A missing file is an empty collection.
func (fp *FilePersistence) Load(ctx context.Context) ([]TimeRecord, error) {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	data, err := os.ReadFile(fp.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []TimeRecord{}, nil
		}
		return nil, fmt.Errorf("read records file: %w", err)
	}

	var records []TimeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal records: %w", err)
	}
	return records, nil
}

// Save writes records to a temp file next to the target and renames it into
// place, so a failed write never truncates the previous snapshot.
func (fp *FilePersistence) Save(ctx context.Context, records []TimeRecord) (err error) {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	if records == nil {
		records = []TimeRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fp.path), filepath.Base(fp.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write records file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync records file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close records file: %w", err)
	}
	if err = os.Rename(tmp.Name(), fp.path); err != nil {
		return fmt.Errorf("replace records file: %w", err)
	}

	log.Printf("Saved %d time records to %s", len(records), fp.path)
	return nil
}

func (fp *FilePersistence) Close() error {
	return nil
}
