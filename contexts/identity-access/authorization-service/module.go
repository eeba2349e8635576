package authorization

import (
	"log/slog"

	"vesalius/contexts/identity-access/authorization-service/adapters/memory"
	"vesalius/contexts/identity-access/authorization-service/application"
	"vesalius/contexts/identity-access/authorization-service/ports"
)

// Module is the authorization-service composition root exposed to runtime wiring.
type Module struct {
	Gate      application.GateUseCase
	Verifier  *memory.StaticVerifier
	Directory *memory.StubDirectory
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Verifier  ports.TokenVerifier
	Directory ports.Directory
	Logger    *slog.Logger
}

// NewModule wires the gate use-case with explicit ports.
func NewModule(deps Dependencies) Module {
	return Module{
		Gate: application.GateUseCase{
			Verifier:  deps.Verifier,
			Directory: deps.Directory,
			Logger:    deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
func NewInMemoryModule(logger *slog.Logger) Module {
	verifier := memory.NewStaticVerifier()
	directory := memory.NewStubDirectory()
	module := NewModule(Dependencies{
		Verifier:  verifier,
		Directory: directory,
		Logger:    logger,
	})
	module.Verifier = verifier
	module.Directory = directory
	return module
}
