package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "vesalius/contexts/knowledge-base/article-service/domain/errors"
	"vesalius/contexts/knowledge-base/article-service/ports"
)

// PublishCommand carries transport-agnostic authoring input. AuthorID
// and AuthorName come from the authorized identity, not the body.
type PublishCommand struct {
	AuthorID    string
	AuthorName  string
	Title       string
	Body        string
	ImagePrompt string
}

// PublishUseCase stores a new article. Illustration generation is a
// best-effort pre-commit step; a generator failure publishes the
// article without an image rather than failing the request.
type PublishUseCase struct {
	Repository  ports.Repository
	Images      ports.ImageGenerator
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u PublishUseCase) Execute(ctx context.Context, cmd PublishCommand) (ports.Article, error) {
	logger := u.logger()

	authorID := strings.TrimSpace(cmd.AuthorID)
	title := strings.TrimSpace(cmd.Title)
	body := strings.TrimSpace(cmd.Body)
	if authorID == "" || title == "" || body == "" {
		return ports.Article{}, domainerrors.ErrInvalidRequest
	}

	articleID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return ports.Article{}, err
	}

	now := u.now()
	article := ports.Article{
		ArticleID:  articleID,
		AuthorID:   authorID,
		AuthorName: strings.TrimSpace(cmd.AuthorName),
		Title:      title,
		Body:       body,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if prompt := strings.TrimSpace(cmd.ImagePrompt); prompt != "" && u.Images != nil {
		url, err := u.Images.Generate(ctx, prompt)
		if err != nil {
			logger.Warn("illustration generation failed",
				"event", "articles_image_failed",
				"module", "knowledge-base/article-service",
				"layer", "application",
				"article_id", articleID,
				"error", err.Error(),
			)
		} else {
			article.ImageURL = url
		}
	}

	created, err := u.Repository.CreateArticle(ctx, article)
	if err != nil {
		logger.Error("article create failed",
			"event", "articles_publish_write_failed",
			"module", "knowledge-base/article-service",
			"layer", "application",
			"article_id", articleID,
			"error", err.Error(),
		)
		return ports.Article{}, err
	}

	logger.Info("article published",
		"event", "articles_published",
		"module", "knowledge-base/article-service",
		"layer", "application",
		"article_id", created.ArticleID,
		"author_id", created.AuthorID,
	)
	return created, nil
}

func (u PublishUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (u PublishUseCase) logger() *slog.Logger {
	if u.Logger != nil {
		return u.Logger
	}
	return slog.Default()
}
