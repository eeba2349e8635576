package postgresadapter

import (
	"time"

	"vesalius/contexts/knowledge-base/article-service/ports"
)

type articleModel struct {
	ArticleID  string    `gorm:"column:article_id;primaryKey"`
	AuthorID   string    `gorm:"column:author_id;index"`
	AuthorName string    `gorm:"column:author_name"`
	Title      string    `gorm:"column:title"`
	Body       string    `gorm:"column:body"`
	ImageURL   string    `gorm:"column:image_url"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (articleModel) TableName() string { return "articles" }

// Models exposes the gorm models for platform migration wiring.
func Models() []any {
	return []any{&articleModel{}}
}

func fromEntity(article ports.Article) articleModel {
	return articleModel{
		ArticleID:  article.ArticleID,
		AuthorID:   article.AuthorID,
		AuthorName: article.AuthorName,
		Title:      article.Title,
		Body:       article.Body,
		ImageURL:   article.ImageURL,
		CreatedAt:  article.CreatedAt.UTC(),
		UpdatedAt:  article.UpdatedAt.UTC(),
	}
}

func (m articleModel) toEntity() ports.Article {
	return ports.Article{
		ArticleID:  m.ArticleID,
		AuthorID:   m.AuthorID,
		AuthorName: m.AuthorName,
		Title:      m.Title,
		Body:       m.Body,
		ImageURL:   m.ImageURL,
		CreatedAt:  m.CreatedAt.UTC(),
		UpdatedAt:  m.UpdatedAt.UTC(),
	}
}
