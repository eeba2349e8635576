package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "vesalius/contexts/knowledge-base/article-service/domain/errors"
	"vesalius/contexts/knowledge-base/article-service/ports"
)

// AnonymizedAuthorName replaces the byline after account erasure.
// Content stays published under the stable author id.
const AnonymizedAuthorName = "Deleted account"

// AnonymizeAuthorUseCase is invoked by runtime wiring when an account
// is erased. Zero affected articles is a normal outcome.
type AnonymizeAuthorUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u AnonymizeAuthorUseCase) Execute(ctx context.Context, authorID string) (int, error) {
	authorID = strings.TrimSpace(authorID)
	if authorID == "" {
		return 0, domainerrors.ErrInvalidRequest
	}

	now := time.Now().UTC()
	if u.Clock != nil {
		now = u.Clock.Now().UTC()
	}

	changed, err := u.Repository.AnonymizeAuthor(ctx, authorID, AnonymizedAuthorName, now)
	if err != nil {
		return 0, err
	}

	logger := u.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("author byline anonymized",
		"event", "articles_author_anonymized",
		"module", "knowledge-base/article-service",
		"layer", "application",
		"author_id", authorID,
		"articles", changed,
	)
	return changed, nil
}
