package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"unishark/internal/domain"
	"unishark/internal/errors"
)

// Save writes the manifest to the configured JSON output file.
func (s *JSONStorage) Save(manifest *domain.Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return errors.WithStackTraceAndPrefix(err, "marshal manifest")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.WithStackTraceAndPrefix(err, "create output dir")
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return errors.WithStackTraceAndPrefix(err, "write manifest")
	}
	return nil
}

// Load reads the last manifest from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.Manifest, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "read manifest file")
	}

	var manifest domain.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "parse manifest")
	}
	return &manifest, nil
}
