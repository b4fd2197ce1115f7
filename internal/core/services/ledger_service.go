package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/internet_banking/internal/apperrors"
	"github.com/SscSPs/internet_banking/internal/core/domain"
	portsrepo "github.com/SscSPs/internet_banking/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/internet_banking/internal/core/ports/services"
	"github.com/SscSPs/internet_banking/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ledgerService runs one interaction against a session's account: it rebuilds
// a Ledger from the session store, applies the operation and writes the state
// back when the operation succeeded.
type ledgerService struct {
	BaseService
	sessionRepo   portsrepo.SessionRepositoryFacade
	ledgerOptions []domain.LedgerOption
	now           func() time.Time
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithLedgerOptions passes options to every Ledger the service builds
func WithLedgerOptions(options ...domain.LedgerOption) LedgerServiceOption {
	return func(s *ledgerService) {
		s.ledgerOptions = append(s.ledgerOptions, options...)
	}
}

// WithServiceClock overrides the time stamped on statements
func WithServiceClock(now func() time.Time) LedgerServiceOption {
	return func(s *ledgerService) {
		s.now = now
	}
}

// NewLedgerService creates a new ledger service with the provided options
func NewLedgerService(repo portsrepo.SessionRepositoryFacade, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		sessionRepo: repo,
		now:         time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

func (s *ledgerService) OpenSession(ctx context.Context, sessionID string) (*domain.AccountState, error) {
	state, err := s.sessionRepo.FindSession(ctx, sessionID)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to load session state", slog.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}

	fresh := domain.NewAccountState()
	if err := s.sessionRepo.SaveSession(ctx, sessionID, fresh); err != nil {
		s.LogError(ctx, err, "Failed to initialize session state", slog.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to initialize session %s: %w", sessionID, err)
	}

	s.LogInfo(ctx, "Opened new account for session", slog.String("session_id", sessionID))
	return &fresh, nil
}

func (s *ledgerService) Statement(ctx context.Context, sessionID string) (*domain.Statement, error) {
	ledger, err := s.loadLedger(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	transactions := ledger.Statement()
	s.LogInfo(ctx, "Statement generated",
		slog.String("session_id", sessionID),
		slog.Int("transaction_count", len(transactions)))

	return &domain.Statement{
		Balance:      ledger.Balance(),
		Transactions: transactions,
		GeneratedAt:  s.now(),
	}, nil
}

func (s *ledgerService) Deposit(ctx context.Context, sessionID string, amount decimal.Decimal) *domain.OperationResult {
	return s.apply(ctx, sessionID, domain.OperationDeposit, amount, (*domain.Ledger).Deposit)
}

func (s *ledgerService) Withdraw(ctx context.Context, sessionID string, amount decimal.Decimal) *domain.OperationResult {
	return s.apply(ctx, sessionID, domain.OperationWithdraw, amount, (*domain.Ledger).Withdraw)
}

// apply never returns an error: load and save failures become InternalFault
// results. The stored state only changes when the operation succeeded and
// the write went through.
func (s *ledgerService) apply(
	ctx context.Context,
	sessionID string,
	op domain.Operation,
	amount decimal.Decimal,
	operate func(*domain.Ledger, decimal.Decimal) domain.OperationResult,
) *domain.OperationResult {
	logger := s.GetLogger(ctx).With(
		slog.String("session_id", sessionID),
		slog.String("operation", string(op)),
		slog.String("amount", amount.String()),
	)

	ledger, err := s.loadLedger(ctx, sessionID)
	if err != nil {
		logger.Error("Failed to rebuild ledger", slog.String("error", err.Error()))
		result := domain.NewFaultResult(op, err, decimal.Zero)
		return &result
	}

	result := operate(ledger, amount)
	if !result.Success {
		logger.Warn("Ledger operation rejected",
			slog.String("kind", string(result.Kind())),
			slog.String("message", result.Message))
		return &result
	}

	if err := s.sessionRepo.SaveSession(ctx, sessionID, ledger.State()); err != nil {
		logger.Error("Failed to save session state", slog.String("error", err.Error()))
		fault := domain.NewFaultResult(op, fmt.Errorf("failed to save session: %w", err), result.Transaction.BalanceBefore)
		return &fault
	}

	logger.Info("Ledger operation applied",
		slog.String("transaction_id", result.Transaction.TransactionID),
		slog.String("balance", result.Balance.String()))
	return &result
}

// loadLedger rebuilds the session's ledger, refusing state that breaks the
// ledger invariants.
func (s *ledgerService) loadLedger(ctx context.Context, sessionID string) (*domain.Ledger, error) {
	state, err := s.OpenSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := accounting.ValidateAccountState(*state); err != nil {
		return nil, fmt.Errorf("stored account state is malformed: %w", err)
	}
	return domain.RestoreLedger(*state, s.ledgerOptions...), nil
}
