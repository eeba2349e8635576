package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domainerrors "vesalius/contexts/knowledge-base/article-service/domain/errors"
	"vesalius/contexts/knowledge-base/article-service/ports"
)

type Store struct {
	mu          sync.RWMutex
	articles    map[string]ports.Article
	nowOverride func() time.Time
}

func NewStore() *Store {
	return &Store{articles: make(map[string]ports.Article)}
}

func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowOverride = now
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	override := s.nowOverride
	s.mu.RUnlock()
	if override != nil {
		return override().UTC()
	}
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) CreateArticle(_ context.Context, article ports.Article) (ports.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles[article.ArticleID] = article
	return article, nil
}

func (s *Store) GetArticle(_ context.Context, articleID string) (ports.Article, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	article, found := s.articles[strings.TrimSpace(articleID)]
	return article, found, nil
}

func (s *Store) ListArticles(_ context.Context) ([]ports.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Article, 0, len(s.articles))
	for _, article := range s.articles {
		items = append(items, article)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ArticleID < items[j].ArticleID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) SetIllustration(_ context.Context, articleID string, imageURL string, now time.Time) (ports.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	article, found := s.articles[strings.TrimSpace(articleID)]
	if !found {
		return ports.Article{}, domainerrors.ErrArticleNotFound
	}
	article.ImageURL = imageURL
	article.UpdatedAt = now
	s.articles[article.ArticleID] = article
	return article, nil
}

func (s *Store) AnonymizeAuthor(_ context.Context, authorID string, replacement string, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for id, article := range s.articles {
		if article.AuthorID != authorID {
			continue
		}
		article.AuthorName = replacement
		article.UpdatedAt = now
		s.articles[id] = article
		changed++
	}
	return changed, nil
}
