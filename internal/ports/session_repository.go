package ports

import (
	"context"

	"github.com/bnema/staking-cli/internal/domain"
)

type SessionRepository interface {
	// Load returns domain.ErrSessionNotFound when nothing was saved yet.
	Load(ctx context.Context) (domain.SessionRecord, error)
	Save(ctx context.Context, record domain.SessionRecord) error
	Clear(ctx context.Context) error
}
