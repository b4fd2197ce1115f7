package repositories

import (
	"context"

	"github.com/SscSPs/internet_banking/internal/core/domain"
)

// SessionReader defines read operations for session-scoped account state
type SessionReader interface {
	// FindSession retrieves the account state stored for a session.
	// It returns apperrors.ErrNotFound when the session is unknown or expired.
	FindSession(ctx context.Context, sessionID string) (*domain.AccountState, error)
}

// SessionWriter defines write operations for session-scoped account state
type SessionWriter interface {
	// SaveSession stores the account state for a session, replacing any previous state.
	SaveSession(ctx context.Context, sessionID string, state domain.AccountState) error
}

// SessionRepositoryFacade combines all session repository interfaces
type SessionRepositoryFacade interface {
	SessionReader
	SessionWriter
}
