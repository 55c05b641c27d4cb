// Package pass keeps the wallet endpoint bearer token in the pass(1)
// password store, one entry per endpoint key.
package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/staking-cli/internal/domain"
	"github.com/bnema/staking-cli/internal/ports"
)

// ErrUnavailable means pass cannot serve requests here: the binary is
// missing or the store was never initialised. Callers fall back to another
// backend.
var ErrUnavailable = errors.New("pass command unavailable")

var (
	missingEntryMarkers  = []string{"is not in the password store"}
	unusableStoreMarkers = []string{
		"You must run:",
		"password store is empty",
		"No public key",
	}
)

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

type Store struct {
	run runFunc
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{run: runPassCommand}
}

// Put stores a single-line token. pass show hands back the first line only,
// so a value spanning lines could not be read back intact.
func (s *Store) Put(ctx context.Context, key string, value string) error {
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("pass put %q: token must be a single line", key)
	}

	_, err := s.exec(ctx, "put", key, value+"\n", "insert", "-m", "-f", key)
	return err
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	stdout, err := s.exec(ctx, "get", key, "", "show", key)
	if err != nil {
		return "", err
	}

	token, _, _ := strings.Cut(stdout, "\n")
	return strings.TrimSuffix(token, "\r"), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.exec(ctx, "delete", key, "", "rm", "-f", key)
	if errors.Is(err, domain.ErrSecretNotFound) {
		return nil
	}
	return err
}

// exec runs one pass subcommand and maps its stderr onto the store's
// sentinel errors.
func (s *Store) exec(ctx context.Context, op, key, input string, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := s.run(ctx, input, args...)
	if err == nil {
		return stdout, nil
	}

	switch {
	case errors.Is(err, ErrUnavailable):
		return "", err
	case containsAny(stderr, missingEntryMarkers):
		return "", fmt.Errorf("pass %s %q: %w", op, key, domain.ErrSecretNotFound)
	case containsAny(stderr, unusableStoreMarkers):
		return "", fmt.Errorf("pass %s %q: %w: %s", op, key, ErrUnavailable, stderr)
	case stderr == "":
		return "", fmt.Errorf("pass %s %q: %w", op, key, err)
	default:
		return "", fmt.Errorf("pass %s %q: %w: %s", op, key, err, stderr)
	}
}

func containsAny(s string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

func runPassCommand(ctx context.Context, input string, args ...string) (string, string, error) {
	path, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}
