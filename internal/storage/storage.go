package storage

import (
	"unishark/internal/config"
	"unishark/internal/domain"
)

// Storage persists and loads the manifest of the last resolution run (e.g. for the browse command).
type Storage interface {
	Save(manifest *domain.Manifest) error
	Load() (*domain.Manifest, error)
}

// JSONStorage stores the manifest in a JSON file under the configured output path.
type JSONStorage struct {
	path string
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{path: cfg.GetOutputPath()}
}

// NewJSONStorageAt returns a Storage bound to an explicit file
func NewJSONStorageAt(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the file the storage reads and writes
func (s *JSONStorage) Path() string {
	return s.path
}
