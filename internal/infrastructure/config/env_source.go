package config

import "os"

// EnvSource loads settings from DOAS_EDIT_* environment variables. It
// outranks the config file so one-off overrides need no file edits.
type EnvSource struct{}

// NewEnvSource creates an environment-backed configuration source.
func NewEnvSource() *EnvSource {
	return &EnvSource{}
}

// Load reads the supported environment variables. Unset variables leave
// the corresponding fields zero so the merge keeps lower-priority values.
func (s *EnvSource) Load() (*Settings, error) {
	return &Settings{
		DefaultUser:     os.Getenv("DOAS_EDIT_USER"),
		ElevationMethod: os.Getenv("DOAS_EDIT_METHOD"),
		Editor:          os.Getenv("DOAS_EDIT_EDITOR"),
	}, nil
}

// Priority returns the environment source priority (highest).
func (s *EnvSource) Priority() int {
	return 1
}

// Name identifies the source in diagnostics.
func (s *EnvSource) Name() string {
	return "environment"
}
