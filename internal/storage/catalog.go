// Package storage persists and watches the mission catalog file.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/valter-silva-au/cyber-warrior/pkg/models"
	"gopkg.in/yaml.v3"
)

// CatalogFile represents the top-level structure of missions.yaml.
type CatalogFile struct {
	Version  string           `yaml:"version"`
	Missions []models.Mission `yaml:"missions"`
}

// CatalogStore reads and writes a YAML mission catalog.
type CatalogStore interface {
	Path() string
	Exists() bool
	Load() ([]models.Mission, error)
	Save(missions []models.Mission) error
}

type fileCatalogStore struct {
	path string
}

// NewCatalogStore creates a CatalogStore for the file at path. A relative
// path is resolved against basePath.
func NewCatalogStore(basePath, path string) CatalogStore {
	if !filepath.IsAbs(path) {
		path = filepath.Join(basePath, path)
	}
	return &fileCatalogStore{path: path}
}

func (s *fileCatalogStore) Path() string {
	return s.path
}

func (s *fileCatalogStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load parses the catalog file. Missions that omit level are given level 1.
// Validation is left to core.NewCatalog.
func (s *fileCatalogStore) Load() ([]models.Mission, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes catalog YAML.
func ParseCatalog(data []byte) ([]models.Mission, error) {
	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("loading catalog: parsing YAML: %w", err)
	}
	for i := range cf.Missions {
		if cf.Missions[i].Level == 0 {
			cf.Missions[i].Level = 1
		}
	}
	return cf.Missions, nil
}

// Save replaces the catalog file. Writers are serialized with a lock file
// and the new content is renamed into place, so readers and the watcher
// never observe a partially written catalog.
func (s *fileCatalogStore) Save(missions []models.Mission) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("saving catalog: creating directory: %w", err)
	}
	data, err := yaml.Marshal(&CatalogFile{Version: "1.0", Missions: missions})
	if err != nil {
		return fmt.Errorf("saving catalog: marshaling YAML: %w", err)
	}

	unlock, err := lockPath(s.path)
	if err != nil {
		return fmt.Errorf("saving catalog: %w", err)
	}
	defer func() { _ = unlock() }()

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("saving catalog: creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("saving catalog: writing file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("saving catalog: writing file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("saving catalog: replacing file: %w", err)
	}
	return nil
}
