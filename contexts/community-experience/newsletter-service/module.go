package newsletter

import (
	"log/slog"

	httpadapter "vesalius/contexts/community-experience/newsletter-service/adapters/http"
	"vesalius/contexts/community-experience/newsletter-service/adapters/memory"
	"vesalius/contexts/community-experience/newsletter-service/application"
	"vesalius/contexts/community-experience/newsletter-service/ports"
)

// Module is the newsletter-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Repository ports.Repository
	Clock      ports.Clock
	Tokens     ports.TokenGenerator
	Notifier   ports.Notifier
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:     deps.Repository,
		Clock:    deps.Clock,
		Tokens:   deps.Tokens,
		Notifier: deps.Notifier,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
func NewInMemoryModule(notifier ports.Notifier, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Clock:      store,
		Tokens:     store,
		Notifier:   notifier,
		Logger:     logger,
	})
	module.Store = store
	return module
}
