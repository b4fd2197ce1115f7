package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/internet_banking/internal/apperrors"
	"github.com/SscSPs/internet_banking/internal/core/domain"
	portsrepo "github.com/SscSPs/internet_banking/internal/core/ports/repositories"
	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps account state in process memory, keyed by session ID.
// Entries expire after ttl without a write.
type SessionRepository struct {
	cache *cache.Cache
}

// NewSessionRepository creates a new SessionRepository. Expired entries are
// purged every cleanupInterval.
func NewSessionRepository(ttl, cleanupInterval time.Duration) *SessionRepository {
	return &SessionRepository{
		cache: cache.New(ttl, cleanupInterval),
	}
}

var _ portsrepo.SessionRepositoryFacade = (*SessionRepository)(nil)

// FindSession returns a copy of the stored state.
func (r *SessionRepository) FindSession(ctx context.Context, sessionID string) (*domain.AccountState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	item, found := r.cache.Get(sessionID)
	if !found {
		return nil, fmt.Errorf("session %s: %w", sessionID, apperrors.ErrNotFound)
	}

	state, ok := item.(domain.AccountState)
	if !ok {
		return nil, fmt.Errorf("session %s holds unexpected value of type %T", sessionID, item)
	}

	clone := state.Clone()
	return &clone, nil
}

// SaveSession stores a copy of state and restarts the session's expiry.
func (r *SessionRepository) SaveSession(ctx context.Context, sessionID string, state domain.AccountState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sessionID == "" {
		return fmt.Errorf("%w: session ID is required", apperrors.ErrValidation)
	}

	r.cache.SetDefault(sessionID, state.Clone())
	return nil
}
