package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version   int            `toml:"version"`
	UpdatedAt string         `toml:"updated_at,omitempty"`
	Session   sessionSchema  `toml:"session"`
	Position  positionSchema `toml:"position"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
	if s.Session.Status == "" {
		s.Session.Status = "disconnected"
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported session schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	Status    string       `toml:"status"`
	Account   string       `toml:"account,omitempty"`
	ChainID   uint64       `toml:"chain_id,omitempty"`
	LastError *faultSchema `toml:"last_error,omitempty"`
}

type faultSchema struct {
	Kind string `toml:"kind"`
	Op   string `toml:"op"`
}

type positionSchema struct {
	TotalStaked string `toml:"total_staked"`
	UserStaked  string `toml:"user_staked"`
	SyncedAt    string `toml:"synced_at,omitempty"`
	Stale       bool   `toml:"stale,omitempty"`
}
