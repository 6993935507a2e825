package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrPlanNotFound is returned when a snapshot filename does not exist.
var ErrPlanNotFound = errors.New("plan not found")

// Storage persists account plans as flat JSON snapshots, one file per save.
// Each save writes the full document; there is no append or merge layer, and
// loading is a direct parse with no migration logic.
type Storage struct {
	dataDir string
}

func NewStorage(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Storage{dataDir: dataDir}, nil
}

// Save writes the document to filename, deriving
// `<company_name>_<timestamp>.json` when filename is empty. Returns the path
// written.
func (s *Storage) Save(doc Document, filename string) (string, error) {
	if filename == "" {
		company := doc.CompanyName()
		if company == "" {
			company = "unknown"
		}
		filename = fmt.Sprintf("%s_%s.json", company, time.Now().Format("20060102_150405"))
	}

	path := filepath.Join(s.dataDir, filepath.Base(filename))

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal plan: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write plan: %w", err)
	}

	return path, nil
}

// Load parses a snapshot by filename.
func (s *Storage) Load(filename string) (Document, error) {
	path := filepath.Join(s.dataDir, filepath.Base(filename))

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("read plan: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	return doc, nil
}

// List returns the snapshot filenames in the data directory.
func (s *Storage) List() ([]string, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list plans: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
