package services

import (
	"github.com/SscSPs/internet_banking/internal/core/domain"
	portsrepo "github.com/SscSPs/internet_banking/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/internet_banking/internal/core/ports/services"
	"github.com/SscSPs/internet_banking/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Ledger = NewLedgerService(
		repos.SessionRepo,
		WithLedgerOptions(domain.WithLocation(cfg.Location)),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.LedgerSvcFacade = (*ledgerService)(nil)
)
