package commands

import (
	"context"
	"errors"
	"testing"

	"vesalius/contexts/knowledge-base/article-service/adapters/memory"
	domainerrors "vesalius/contexts/knowledge-base/article-service/domain/errors"
	"vesalius/contexts/knowledge-base/article-service/ports"
)

func seedArticle(t *testing.T, store *memory.Store, authorID string) ports.Article {
	t.Helper()
	publish := PublishUseCase{Repository: store, Clock: store, IDGenerator: store}
	article, err := publish.Execute(context.Background(), PublishCommand{
		AuthorID:   authorID,
		AuthorName: "Dr. Vesalius",
		Title:      "Understanding anatomy",
		Body:       "The study of structure.",
	})
	if err != nil {
		t.Fatalf("seed publish failed: %v", err)
	}
	return article
}

func TestIllustrateSetsImageOnAuthorsArticle(t *testing.T) {
	store := memory.NewStore()
	article := seedArticle(t, store, "acc_prof_1")

	images := &stubImages{url: "https://cdn.example.com/img/42.png"}
	illustrate := IllustrateUseCase{Repository: store, Images: images, Clock: store}

	updated, err := illustrate.Execute(context.Background(), IllustrateCommand{
		ArticleID: article.ArticleID,
		AuthorID:  "acc_prof_1",
		Prompt:    "vascular diagram",
	})
	if err != nil {
		t.Fatalf("illustrate failed: %v", err)
	}
	if updated.ImageURL != images.url {
		t.Fatalf("expected generated image url, got %q", updated.ImageURL)
	}
	if len(images.seen) != 1 || images.seen[0] != "vascular diagram" {
		t.Fatalf("expected one generation call with the prompt, got %v", images.seen)
	}

	stored, found, err := store.GetArticle(context.Background(), article.ArticleID)
	if err != nil || !found {
		t.Fatalf("stored article lookup failed: found=%v err=%v", found, err)
	}
	if stored.ImageURL != images.url {
		t.Fatalf("image url must be persisted, got %q", stored.ImageURL)
	}
}

func TestIllustrateRejectsOtherAuthors(t *testing.T) {
	store := memory.NewStore()
	article := seedArticle(t, store, "acc_prof_1")

	images := &stubImages{url: "https://cdn.example.com/img/42.png"}
	illustrate := IllustrateUseCase{Repository: store, Images: images, Clock: store}

	_, err := illustrate.Execute(context.Background(), IllustrateCommand{
		ArticleID: article.ArticleID,
		AuthorID:  "acc_prof_2",
		Prompt:    "vascular diagram",
	})
	if !errors.Is(err, domainerrors.ErrNotArticleAuthor) {
		t.Fatalf("expected ErrNotArticleAuthor, got %v", err)
	}
	if len(images.seen) != 0 {
		t.Fatalf("generator must not run for a non-author, got %v", images.seen)
	}
}

func TestIllustrateUnknownArticle(t *testing.T) {
	store := memory.NewStore()
	illustrate := IllustrateUseCase{
		Repository: store,
		Images:     &stubImages{url: "https://cdn.example.com/img/42.png"},
		Clock:      store,
	}

	_, err := illustrate.Execute(context.Background(), IllustrateCommand{
		ArticleID: "art_missing",
		AuthorID:  "acc_prof_1",
		Prompt:    "vascular diagram",
	})
	if !errors.Is(err, domainerrors.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}

func TestIllustrateSurfacesGeneratorFailure(t *testing.T) {
	store := memory.NewStore()
	article := seedArticle(t, store, "acc_prof_1")

	illustrate := IllustrateUseCase{
		Repository: store,
		Images:     &stubImages{err: errors.New("image service down")},
		Clock:      store,
	}

	_, err := illustrate.Execute(context.Background(), IllustrateCommand{
		ArticleID: article.ArticleID,
		AuthorID:  "acc_prof_1",
		Prompt:    "vascular diagram",
	})
	if err == nil {
		t.Fatal("expected an error when generation fails")
	}

	stored, _, _ := store.GetArticle(context.Background(), article.ArticleID)
	if stored.ImageURL != "" {
		t.Fatalf("failed generation must not persist an image url, got %q", stored.ImageURL)
	}
}
