package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/staking-cli/internal/domain"
	"github.com/bnema/staking-cli/internal/ports"
	"github.com/ethereum/go-ethereum/common"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	SessionPathKey    = "session.path"
	sessionFileMode   = 0o600
	sessionDirMode    = 0o700
	sessionConfigDir  = ".stk"
	sessionConfigFile = "session.toml"
	tempFilePattern   = ".session-*.toml.tmp"
)

// Repository keeps the last session record in a single TOML file.
type Repository struct {
	sessionPath string
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SessionRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	cfg.SetDefault(SessionPathKey, filepath.Join(homeDir, sessionConfigDir, sessionConfigFile))

	sessionPath := cfg.GetString(SessionPathKey)
	if sessionPath == "" {
		return nil, errors.New("session path is empty")
	}
	sessionPath, err = normalizeSessionPath(sessionPath)
	if err != nil {
		return nil, err
	}

	return &Repository{sessionPath: sessionPath, mu: lockForPath(sessionPath)}, nil
}

func (r *Repository) Path() string {
	return r.sessionPath
}

func (r *Repository) Save(ctx context.Context, record domain.SessionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file := toSchema(record)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) Load(ctx context.Context) (domain.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionRecord{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, found, err := r.readSchema()
	if err != nil {
		return domain.SessionRecord{}, err
	}
	if !found {
		return domain.SessionRecord{}, domain.ErrSessionNotFound
	}

	return fromSchema(file)
}

func (r *Repository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.sessionPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}

	return nil
}

func (r *Repository) readSchema() (fileSchema, bool, error) {
	data, err := os.ReadFile(r.sessionPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, false, nil
		}
		return fileSchema{}, false, fmt.Errorf("read session file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, false, fmt.Errorf("decode session file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, false, err
	}
	file.applyDefaults()

	return file, true, nil
}

func normalizeSessionPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve session path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

// writeSchema replaces the session file atomically through a temp file.
func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.sessionPath), sessionDirMode); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.sessionPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp session file: %w", err)
	}

	if err := tempFile.Chmod(sessionFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp session file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp session file: %w", err)
	}

	if err := os.Rename(tempName, r.sessionPath); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	cleanup = false

	return nil
}

func toSchema(record domain.SessionRecord) fileSchema {
	session := sessionSchema{
		Status:  string(record.Session.Status),
		ChainID: record.Session.ChainID,
	}
	if record.Session.Account != (common.Address{}) {
		session.Account = record.Session.Account.Hex()
	}
	if fault := record.Session.LastError; fault != nil {
		session.LastError = &faultSchema{Kind: string(fault.Kind), Op: string(fault.Op)}
	}

	return fileSchema{
		Version:   currentSchemaVersion,
		UpdatedAt: formatTime(record.UpdatedAt),
		Session:   session,
		Position: positionSchema{
			TotalStaked: record.Position.TotalStaked.String(),
			UserStaked:  record.Position.UserStaked.String(),
			SyncedAt:    formatTime(record.Position.SyncedAt),
			Stale:       record.Position.Stale,
		},
	}
}

func fromSchema(file fileSchema) (domain.SessionRecord, error) {
	status := domain.ConnectionStatus(file.Session.Status)
	switch status {
	case domain.StatusDisconnected, domain.StatusConnecting, domain.StatusConnected:
	default:
		return domain.SessionRecord{}, fmt.Errorf("decode session file: unknown status %q", file.Session.Status)
	}

	session := domain.Session{Status: status, ChainID: file.Session.ChainID}
	if file.Session.Account != "" {
		if !common.IsHexAddress(file.Session.Account) {
			return domain.SessionRecord{}, fmt.Errorf("decode session file: invalid account %q", file.Session.Account)
		}
		session.Account = common.HexToAddress(file.Session.Account)
	}
	if fault := file.Session.LastError; fault != nil {
		kind := domain.ErrorKind(fault.Kind)
		if !kind.Valid() {
			kind = domain.ErrorKindUnknown
		}
		session.LastError = &domain.Fault{Kind: kind, Op: domain.Operation(fault.Op)}
	}

	var total, user domain.Amount
	if err := total.UnmarshalText([]byte(file.Position.TotalStaked)); err != nil {
		return domain.SessionRecord{}, fmt.Errorf("decode session file: total staked: %w", err)
	}
	if err := user.UnmarshalText([]byte(file.Position.UserStaked)); err != nil {
		return domain.SessionRecord{}, fmt.Errorf("decode session file: user staked: %w", err)
	}

	return domain.SessionRecord{
		Session: session,
		Position: domain.StakePosition{
			TotalStaked: total,
			UserStaked:  user,
			SyncedAt:    parseTime(file.Position.SyncedAt),
			Stale:       file.Position.Stale,
		},
		UpdatedAt: parseTime(file.UpdatedAt),
	}, nil
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339Nano)
}
