package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	domainerrors "vesalius/contexts/knowledge-base/article-service/domain/errors"
	"vesalius/contexts/knowledge-base/article-service/ports"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) CreateArticle(ctx context.Context, article ports.Article) (ports.Article, error) {
	row := fromEntity(article)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return ports.Article{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetArticle(ctx context.Context, articleID string) (ports.Article, bool, error) {
	var row articleModel
	err := r.db.WithContext(ctx).
		Where("article_id = ?", strings.TrimSpace(articleID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Article{}, false, nil
		}
		return ports.Article{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListArticles(ctx context.Context) ([]ports.Article, error) {
	var rows []articleModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]ports.Article, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) SetIllustration(ctx context.Context, articleID string, imageURL string, now time.Time) (ports.Article, error) {
	articleID = strings.TrimSpace(articleID)
	result := r.db.WithContext(ctx).
		Model(&articleModel{}).
		Where("article_id = ?", articleID).
		Updates(map[string]any{
			"image_url":  imageURL,
			"updated_at": now.UTC(),
		})
	if result.Error != nil {
		return ports.Article{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ports.Article{}, domainerrors.ErrArticleNotFound
	}

	var row articleModel
	if err := r.db.WithContext(ctx).Where("article_id = ?", articleID).First(&row).Error; err != nil {
		return ports.Article{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) AnonymizeAuthor(ctx context.Context, authorID string, replacement string, now time.Time) (int, error) {
	result := r.db.WithContext(ctx).
		Model(&articleModel{}).
		Where("author_id = ?", authorID).
		Updates(map[string]any{
			"author_name": replacement,
			"updated_at":  now.UTC(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}
