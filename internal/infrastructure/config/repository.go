package config

import (
	"os"
	"path/filepath"
	"sort"
)

// Settings holds everything doas-edit reads from configuration. The
// default target user and elevation method live here so the CLI layer
// can resolve them before the rewriting core is invoked; the core itself
// takes them as plain arguments.
type Settings struct {
	// DefaultUser is the account files are opened as when no --user flag
	// is given.
	DefaultUser string `json:"default_user"`

	// ElevationMethod selects how privileges are obtained on the target
	// host: "doas", "sudo" or "su".
	ElevationMethod string `json:"elevation_method"`

	// Editor overrides the $VISUAL/$EDITOR resolution chain.
	Editor string `json:"editor"`

	// Methods adds or replaces transport method entries in the registry.
	Methods []MethodSettings `json:"methods,omitempty"`

	// LocalHosts adds host names the transport layer should treat as the
	// local machine.
	LocalHosts []string `json:"local_hosts,omitempty"`
}

// MethodSettings describes one transport method override.
type MethodSettings struct {
	Name         string `json:"name"`
	LoginProgram string `json:"login_program,omitempty"`
	CopyProgram  string `json:"copy_program,omitempty"`
	MountType    bool   `json:"mount_type,omitempty"`
	Elevation    bool   `json:"elevation,omitempty"`
}

// Source is one origin of configuration values. Sources are merged in
// priority order; lower numbers win.
type Source interface {
	Load() (*Settings, error)
	Priority() int
	Name() string
}

// Repository merges configuration from all registered sources on top of
// the built-in defaults.
type Repository struct {
	sources []Source
}

// NewRepository creates a repository with the default source stack:
// environment variables over the JSON config file.
func NewRepository(configPath string) *Repository {
	if configPath == "" {
		configPath = os.Getenv("DOAS_EDIT_CONFIG")
	}
	if configPath == "" {
		configPath = defaultConfigPath()
	}

	repo := &Repository{}
	repo.AddSource(NewEnvSource())
	repo.AddSource(NewFileSource(configPath))

	return repo
}

// AddSource registers an additional configuration source.
func (r *Repository) AddSource(source Source) {
	r.sources = append(r.sources, source)
}

// LoadDefault returns the built-in defaults.
func (r *Repository) LoadDefault() *Settings {
	return &Settings{
		DefaultUser:     "root",
		ElevationMethod: "doas",
	}
}

// Load merges all sources on top of the defaults. A source that fails to
// load is skipped; configuration is best-effort and the defaults always
// apply.
func (r *Repository) Load() (*Settings, error) {
	settings := r.LoadDefault()

	sorted := make([]Source, len(r.sources))
	copy(sorted, r.sources)
	sort.SliceStable(sorted, func(i, j int) bool {
		// Apply lower-priority sources first so higher-priority ones
		// overwrite them.
		return sorted[i].Priority() > sorted[j].Priority()
	})

	for _, source := range sorted {
		loaded, err := source.Load()
		if err != nil || loaded == nil {
			continue
		}
		settings = merge(settings, loaded)
	}

	return settings, nil
}

// merge overlays non-zero fields of overlay onto base.
func merge(base, overlay *Settings) *Settings {
	merged := *base

	if overlay.DefaultUser != "" {
		merged.DefaultUser = overlay.DefaultUser
	}
	if overlay.ElevationMethod != "" {
		merged.ElevationMethod = overlay.ElevationMethod
	}
	if overlay.Editor != "" {
		merged.Editor = overlay.Editor
	}
	merged.Methods = append(merged.Methods, overlay.Methods...)
	merged.LocalHosts = append(merged.LocalHosts, overlay.LocalHosts...)

	return &merged
}

// defaultConfigPath returns ~/.config/doas-edit/config.json, falling back
// to the relative file name when the home directory is unknown.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(home, ".config", "doas-edit", "config.json")
}
