package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domainerrors "vesalius/contexts/knowledge-base/article-service/domain/errors"
	"vesalius/contexts/knowledge-base/article-service/ports"
)

// IllustrateCommand adds a generated illustration to an existing
// article. Only the article's author may request one.
type IllustrateCommand struct {
	ArticleID string
	AuthorID  string
	Prompt    string
}

// IllustrateUseCase differs from the publish-time generation: here the
// image is the whole point of the request, so a generator failure is an
// error rather than a silently missing illustration.
type IllustrateUseCase struct {
	Repository ports.Repository
	Images     ports.ImageGenerator
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u IllustrateUseCase) Execute(ctx context.Context, cmd IllustrateCommand) (ports.Article, error) {
	logger := u.logger()

	articleID := strings.TrimSpace(cmd.ArticleID)
	authorID := strings.TrimSpace(cmd.AuthorID)
	prompt := strings.TrimSpace(cmd.Prompt)
	if articleID == "" || authorID == "" || prompt == "" {
		return ports.Article{}, domainerrors.ErrInvalidRequest
	}
	if u.Images == nil {
		return ports.Article{}, errors.New("illustration generation is not configured")
	}

	article, found, err := u.Repository.GetArticle(ctx, articleID)
	if err != nil {
		return ports.Article{}, err
	}
	if !found {
		return ports.Article{}, domainerrors.ErrArticleNotFound
	}
	if article.AuthorID != authorID {
		return ports.Article{}, domainerrors.ErrNotArticleAuthor
	}

	url, err := u.Images.Generate(ctx, prompt)
	if err != nil {
		logger.Error("illustration generation failed",
			"event", "articles_illustrate_failed",
			"module", "knowledge-base/article-service",
			"layer", "application",
			"article_id", articleID,
			"error", err.Error(),
		)
		return ports.Article{}, fmt.Errorf("generate illustration: %w", err)
	}

	updated, err := u.Repository.SetIllustration(ctx, articleID, url, u.now())
	if err != nil {
		return ports.Article{}, err
	}

	logger.Info("article illustrated",
		"event", "articles_illustrated",
		"module", "knowledge-base/article-service",
		"layer", "application",
		"article_id", updated.ArticleID,
	)
	return updated, nil
}

func (u IllustrateUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (u IllustrateUseCase) logger() *slog.Logger {
	if u.Logger != nil {
		return u.Logger
	}
	return slog.Default()
}
