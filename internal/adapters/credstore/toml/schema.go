package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version     int               `toml:"version"`
	Session     sessionSchema     `toml:"session"`
	Preferences preferencesSchema `toml:"preferences"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported session schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	Token string `toml:"token,omitempty"`
	Email string `toml:"email,omitempty"`
}

type preferencesSchema struct {
	Theme string `toml:"theme,omitempty"`
}
