package commands

import (
	"context"
	"errors"
	"testing"

	"vesalius/contexts/knowledge-base/article-service/adapters/memory"
	domainerrors "vesalius/contexts/knowledge-base/article-service/domain/errors"
)

type stubImages struct {
	url  string
	err  error
	seen []string
}

func (s *stubImages) Generate(_ context.Context, prompt string) (string, error) {
	s.seen = append(s.seen, prompt)
	return s.url, s.err
}

func TestPublishStoresArticleWithIllustration(t *testing.T) {
	store := memory.NewStore()
	images := &stubImages{url: "https://cdn.example.com/img/1.png"}
	publish := PublishUseCase{
		Repository:  store,
		Images:      images,
		Clock:       store,
		IDGenerator: store,
	}

	article, err := publish.Execute(context.Background(), PublishCommand{
		AuthorID:    "acc_prof_1",
		AuthorName:  "Dr. Vesalius",
		Title:       "Understanding anatomy",
		Body:        "The study of structure.",
		ImagePrompt: "anatomical illustration",
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if article.ImageURL != images.url {
		t.Fatalf("expected generated image url, got %q", article.ImageURL)
	}
	if len(images.seen) != 1 || images.seen[0] != "anatomical illustration" {
		t.Fatalf("expected one generation call with the prompt, got %v", images.seen)
	}
}

func TestPublishSurvivesImageGeneratorFailure(t *testing.T) {
	store := memory.NewStore()
	images := &stubImages{err: errors.New("image service down")}
	publish := PublishUseCase{
		Repository:  store,
		Images:      images,
		Clock:       store,
		IDGenerator: store,
	}

	article, err := publish.Execute(context.Background(), PublishCommand{
		AuthorID:    "acc_prof_1",
		Title:       "Understanding anatomy",
		Body:        "The study of structure.",
		ImagePrompt: "anatomical illustration",
	})
	if err != nil {
		t.Fatalf("publish must not fail on image generation: %v", err)
	}
	if article.ImageURL != "" {
		t.Fatalf("expected no image url after generator failure, got %q", article.ImageURL)
	}
}

func TestPublishRejectsEmptyTitleOrBody(t *testing.T) {
	store := memory.NewStore()
	publish := PublishUseCase{Repository: store, Clock: store, IDGenerator: store}

	_, err := publish.Execute(context.Background(), PublishCommand{AuthorID: "acc", Body: "text"})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for empty title, got %v", err)
	}
	_, err = publish.Execute(context.Background(), PublishCommand{AuthorID: "acc", Title: "title"})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for empty body, got %v", err)
	}
}

func TestAnonymizeAuthorRewritesBylinesOnly(t *testing.T) {
	store := memory.NewStore()
	publish := PublishUseCase{Repository: store, Clock: store, IDGenerator: store}

	for _, cmd := range []PublishCommand{
		{AuthorID: "acc_gone", AuthorName: "Dr. Gone", Title: "First", Body: "one"},
		{AuthorID: "acc_gone", AuthorName: "Dr. Gone", Title: "Second", Body: "two"},
		{AuthorID: "acc_stays", AuthorName: "Dr. Stays", Title: "Third", Body: "three"},
	} {
		if _, err := publish.Execute(context.Background(), cmd); err != nil {
			t.Fatalf("seed publish failed: %v", err)
		}
	}

	anonymize := AnonymizeAuthorUseCase{Repository: store, Clock: store}
	changed, err := anonymize.Execute(context.Background(), "acc_gone")
	if err != nil {
		t.Fatalf("anonymize failed: %v", err)
	}
	if changed != 2 {
		t.Fatalf("expected 2 articles rewritten, got %d", changed)
	}

	articles, err := store.ListArticles(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, article := range articles {
		switch article.AuthorID {
		case "acc_gone":
			if article.AuthorName != AnonymizedAuthorName {
				t.Fatalf("expected anonymized byline, got %q", article.AuthorName)
			}
		case "acc_stays":
			if article.AuthorName != "Dr. Stays" {
				t.Fatalf("other authors must be untouched, got %q", article.AuthorName)
			}
		}
	}
}
