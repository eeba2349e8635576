package ports

import (
	"context"
	"time"
)

// Article is one published educational piece. AuthorID stays stable
// across erasure; AuthorName is what anonymization rewrites.
type Article struct {
	ArticleID  string
	AuthorID   string
	AuthorName string
	Title      string
	Body       string
	ImageURL   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Repository interface {
	CreateArticle(ctx context.Context, article Article) (Article, error)
	GetArticle(ctx context.Context, articleID string) (Article, bool, error)
	ListArticles(ctx context.Context) ([]Article, error)
	// SetIllustration stores the generated image URL on an existing
	// article.
	SetIllustration(ctx context.Context, articleID string, imageURL string, now time.Time) (Article, error)
	// AnonymizeAuthor rewrites the display name on every article by the
	// author and returns how many rows changed.
	AnonymizeAuthor(ctx context.Context, authorID string, replacement string, now time.Time) (int, error)
}

// ImageGenerator produces an illustration URL for a prompt. Callers
// treat failures as best-effort; an article publishes without an image.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
