package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/staking-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokenKey = "stk/rpc/localhost/token"

func TestStorePutUsesPassInsert(t *testing.T) {
	t.Parallel()

	called := false
	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, []string{"insert", "-m", "-f", tokenKey}, args)
			assert.Equal(t, "bearer-token\n", input)
			return "", "", nil
		},
	}

	require.NoError(t, store.Put(context.Background(), tokenKey, "bearer-token"))
	assert.True(t, called)
}

func TestStoreGetReturnsFirstLine(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", tokenKey}, args)
			assert.Empty(t, input)
			return "bearer-token\r\nurl: http://localhost:8545\n", "", nil
		},
	}

	value, err := store.Get(context.Background(), tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "bearer-token", value)
}

func TestStoreGetMissingEntryReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: " + tokenKey + " is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), tokenKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "gpg: decryption failed: No secret key", errors.New("exit status 2")
		},
	}

	_, err := store.Get(context.Background(), tokenKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "pass get")
	assert.ErrorContains(t, err, tokenKey)
	assert.ErrorContains(t, err, "decryption failed")
}

func TestStoreDeleteUsesPassRemoveAndIgnoresMissing(t *testing.T) {
	t.Parallel()

	calls := 0
	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			calls++
			assert.Equal(t, []string{"rm", "-f", tokenKey}, args)
			if calls == 2 {
				return "", "Error: " + tokenKey + " is not in the password store.", errors.New("exit status 1")
			}
			return "", "", nil
		},
	}

	require.NoError(t, store.Delete(context.Background(), tokenKey))
	require.NoError(t, store.Delete(context.Background(), tokenKey))
	assert.Equal(t, 2, calls)
}

func TestStoreHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			t.Fatal("pass must not run with a canceled context")
			return "", "", nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Get(ctx, tokenKey)
	require.ErrorIs(t, err, context.Canceled)
}

func TestStoreUninitialisedIsUnavailable(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: password store is empty. Try \"pass init\".", errors.New("exit status 1")
		},
	}

	err := store.Put(context.Background(), tokenKey, "bearer-token")
	require.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorContains(t, err, "pass put")
}

func TestStorePutRejectsMultiLineToken(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			t.Fatal("pass must not run for a multi-line token")
			return "", "", nil
		},
	}

	err := store.Put(context.Background(), tokenKey, "line-one\nline-two")
	require.Error(t, err)
	assert.ErrorContains(t, err, "single line")
}
