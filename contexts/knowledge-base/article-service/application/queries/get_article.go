package queries

import (
	"context"
	"log/slog"
	"strings"

	domainerrors "vesalius/contexts/knowledge-base/article-service/domain/errors"
	"vesalius/contexts/knowledge-base/article-service/ports"
)

type GetArticleUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u GetArticleUseCase) Execute(ctx context.Context, articleID string) (ports.Article, error) {
	articleID = strings.TrimSpace(articleID)
	if articleID == "" {
		return ports.Article{}, domainerrors.ErrInvalidRequest
	}

	article, found, err := u.Repository.GetArticle(ctx, articleID)
	if err != nil {
		return ports.Article{}, err
	}
	if !found {
		return ports.Article{}, domainerrors.ErrArticleNotFound
	}
	return article, nil
}
