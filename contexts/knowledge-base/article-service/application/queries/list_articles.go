package queries

import (
	"context"
	"log/slog"

	"vesalius/contexts/knowledge-base/article-service/ports"
)

type ListArticlesUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u ListArticlesUseCase) Execute(ctx context.Context) ([]ports.Article, error) {
	return u.Repository.ListArticles(ctx)
}
