package accounts

import (
	"log/slog"

	httpadapter "vesalius/contexts/identity-access/account-service/adapters/http"
	"vesalius/contexts/identity-access/account-service/adapters/memory"
	"vesalius/contexts/identity-access/account-service/application/commands"
	"vesalius/contexts/identity-access/account-service/application/queries"
	"vesalius/contexts/identity-access/account-service/application/workers"
	"vesalius/contexts/identity-access/account-service/ports"
)

// Module is the account-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Relay   workers.OutboxRelay
	Store   *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Repository      ports.Repository
	Outbox          ports.OutboxRepository
	Notifier        ports.Notifier
	Publisher       ports.IdentityEventPublisher
	Clock           ports.Clock
	IDGenerator     ports.IDGenerator
	OutboxBatchSize int
	Logger          *slog.Logger
}

// NewModule wires the account lifecycle use-cases and transport handler
// using explicit ports.
func NewModule(deps Dependencies) Module {
	register := commands.RegisterUseCase{
		Repository:  deps.Repository,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	reapply := commands.ReapplyUseCase{
		Repository:  deps.Repository,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	decide := commands.DecideUseCase{
		Repository:  deps.Repository,
		Notifier:    deps.Notifier,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	erase := commands.EraseUseCase{
		Repository:  deps.Repository,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	getAccount := queries.GetAccountUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}
	listAccounts := queries.ListAccountsUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}
	overview := queries.OverviewUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}

	handler := httpadapter.Handler{
		Register:     register,
		Reapply:      reapply,
		Decide:       decide,
		Erase:        erase,
		GetAccount:   getAccount,
		ListAccounts: listAccounts,
		Overview:     overview,
		Logger:       deps.Logger,
	}

	relay := workers.OutboxRelay{
		Outbox:    deps.Outbox,
		Publisher: deps.Publisher,
		Clock:     deps.Clock,
		BatchSize: deps.OutboxBatchSize,
		Logger:    deps.Logger,
	}

	return Module{
		Handler: handler,
		Relay:   relay,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
func NewInMemoryModule(notifier ports.Notifier, publisher ports.IdentityEventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Outbox:      store,
		Notifier:    notifier,
		Publisher:   publisher,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
