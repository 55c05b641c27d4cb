package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/staking-cli/internal/domain"
	"github.com/bnema/staking-cli/internal/ports"
)

// TokenVerifier checks that endpoint accepts token.
type TokenVerifier func(ctx context.Context, endpoint, token string) error

// CredentialService manages the bearer token sent to the wallet endpoint.
type CredentialService struct {
	store ports.SecretStore
}

func NewCredentialService(store ports.SecretStore) *CredentialService {
	return &CredentialService{store: store}
}

// SetToken stores token for endpoint. When verify rejects it the previous
// token, if any, is put back.
func (s *CredentialService) SetToken(ctx context.Context, endpoint, token string, verify TokenVerifier) error {
	key, err := CredentialKey(endpoint)
	if err != nil {
		return err
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("rpc token is empty")
	}

	previous, hadPrevious, err := s.lookup(ctx, key)
	if err != nil {
		return err
	}

	if err := s.store.Put(ctx, key, token); err != nil {
		return fmt.Errorf("store rpc token: %w", err)
	}

	if verify == nil {
		return nil
	}

	if err := verify(ctx, endpoint, token); err != nil {
		var rollbackErr error
		if hadPrevious {
			rollbackErr = s.store.Put(ctx, key, previous)
		} else {
			rollbackErr = s.store.Delete(ctx, key)
		}
		if rollbackErr != nil {
			return fmt.Errorf("verify rpc token and restore previous token: %w", errors.Join(err, rollbackErr))
		}

		return fmt.Errorf("verify rpc token: %w", err)
	}

	return nil
}

// Token returns the stored token for endpoint, or "" when none is set.
func (s *CredentialService) Token(ctx context.Context, endpoint string) (string, error) {
	key, err := CredentialKey(endpoint)
	if err != nil {
		return "", err
	}

	token, _, err := s.lookup(ctx, key)
	return token, err
}

func (s *CredentialService) RemoveToken(ctx context.Context, endpoint string) error {
	key, err := CredentialKey(endpoint)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete rpc token: %w", err)
	}

	return nil
}

func (s *CredentialService) lookup(ctx context.Context, key string) (string, bool, error) {
	value, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read rpc token: %w", err)
	}

	return value, true, nil
}
