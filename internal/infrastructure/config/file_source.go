package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// FileSource loads settings from a JSON file. A missing file is not an
// error; it simply contributes nothing.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed configuration source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and decodes the configuration file.
func (s *FileSource) Load() (*Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", s.path, err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", s.path, err)
	}

	return &settings, nil
}

// Priority returns the file source priority (lower than environment).
func (s *FileSource) Priority() int {
	return 10
}

// Name identifies the source in diagnostics.
func (s *FileSource) Name() string {
	return "file:" + s.path
}
