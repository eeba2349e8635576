package articles

import (
	"log/slog"

	httpadapter "vesalius/contexts/knowledge-base/article-service/adapters/http"
	"vesalius/contexts/knowledge-base/article-service/adapters/memory"
	"vesalius/contexts/knowledge-base/article-service/application/commands"
	"vesalius/contexts/knowledge-base/article-service/application/queries"
	"vesalius/contexts/knowledge-base/article-service/ports"
)

// Module is the article-service composition root exposed to runtime wiring.
type Module struct {
	Handler         httpadapter.Handler
	AnonymizeAuthor commands.AnonymizeAuthorUseCase
	Store           *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Repository  ports.Repository
	Images      ports.ImageGenerator
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	publish := commands.PublishUseCase{
		Repository:  deps.Repository,
		Images:      deps.Images,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	illustrate := commands.IllustrateUseCase{
		Repository: deps.Repository,
		Images:     deps.Images,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	anonymize := commands.AnonymizeAuthorUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	getArticle := queries.GetArticleUseCase{Repository: deps.Repository, Logger: deps.Logger}
	listArticles := queries.ListArticlesUseCase{Repository: deps.Repository, Logger: deps.Logger}
	search := queries.SearchUseCase{Repository: deps.Repository, Logger: deps.Logger}

	handler := httpadapter.Handler{
		Publish:         publish,
		Illustrate:      illustrate,
		AnonymizeAuthor: anonymize,
		GetArticle:      getArticle,
		ListArticles:    listArticles,
		Search:          search,
		Logger:          deps.Logger,
	}

	return Module{
		Handler:         handler,
		AnonymizeAuthor: anonymize,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
func NewInMemoryModule(images ports.ImageGenerator, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Images:      images,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
