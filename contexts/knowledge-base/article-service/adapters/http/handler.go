package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"vesalius/contexts/knowledge-base/article-service/application/commands"
	"vesalius/contexts/knowledge-base/article-service/application/queries"
	"vesalius/contexts/knowledge-base/article-service/ports"
	httptransport "vesalius/contexts/knowledge-base/article-service/transport/http"
)

type Handler struct {
	Publish         commands.PublishUseCase
	Illustrate      commands.IllustrateUseCase
	AnonymizeAuthor commands.AnonymizeAuthorUseCase
	GetArticle      queries.GetArticleUseCase
	ListArticles    queries.ListArticlesUseCase
	Search          queries.SearchUseCase
	Logger          *slog.Logger
}

func (h Handler) PublishHandler(
	ctx context.Context,
	authorID string,
	authorName string,
	req httptransport.PublishRequest,
) (httptransport.PublishResponse, error) {
	article, err := h.Publish.Execute(ctx, commands.PublishCommand{
		AuthorID:    authorID,
		AuthorName:  authorName,
		Title:       req.Title,
		Body:        req.Body,
		ImagePrompt: req.ImagePrompt,
	})
	if err != nil {
		return httptransport.PublishResponse{}, err
	}
	return httptransport.PublishResponse{
		Success: true,
		Data:    articlePayload(article, true),
	}, nil
}

func (h Handler) IllustrateHandler(
	ctx context.Context,
	authorID string,
	articleID string,
	req httptransport.IllustrateRequest,
) (httptransport.IllustrateResponse, error) {
	article, err := h.Illustrate.Execute(ctx, commands.IllustrateCommand{
		ArticleID: articleID,
		AuthorID:  authorID,
		Prompt:    req.Prompt,
	})
	if err != nil {
		return httptransport.IllustrateResponse{}, err
	}
	return httptransport.IllustrateResponse{
		Success: true,
		Data:    articlePayload(article, true),
	}, nil
}

func (h Handler) GetArticleHandler(ctx context.Context, articleID string) (httptransport.GetArticleResponse, error) {
	article, err := h.GetArticle.Execute(ctx, articleID)
	if err != nil {
		return httptransport.GetArticleResponse{}, err
	}
	return httptransport.GetArticleResponse{
		Success: true,
		Data:    articlePayload(article, true),
	}, nil
}

func (h Handler) ListArticlesHandler(ctx context.Context) (httptransport.ListArticlesResponse, error) {
	articles, err := h.ListArticles.Execute(ctx)
	if err != nil {
		return httptransport.ListArticlesResponse{}, err
	}

	resp := httptransport.ListArticlesResponse{Success: true}
	resp.Data.Articles = make([]httptransport.ArticlePayload, 0, len(articles))
	for _, article := range articles {
		resp.Data.Articles = append(resp.Data.Articles, articlePayload(article, false))
	}
	return resp, nil
}

func (h Handler) SearchHandler(ctx context.Context, query string) (httptransport.SearchResponse, error) {
	results, err := h.Search.Execute(ctx, query)
	if err != nil {
		return httptransport.SearchResponse{}, err
	}

	resp := httptransport.SearchResponse{Success: true}
	resp.Data.Results = make([]httptransport.SearchResultPayload, 0, len(results))
	for _, result := range results {
		resp.Data.Results = append(resp.Data.Results, httptransport.SearchResultPayload{
			Article: articlePayload(result.Article, false),
			Score:   result.Score,
		})
	}
	return resp, nil
}

func articlePayload(article ports.Article, includeBody bool) httptransport.ArticlePayload {
	payload := httptransport.ArticlePayload{
		ArticleID:  article.ArticleID,
		AuthorID:   article.AuthorID,
		AuthorName: article.AuthorName,
		Title:      article.Title,
		ImageURL:   article.ImageURL,
		CreatedAt:  article.CreatedAt.UTC().Format(time.RFC3339),
	}
	if includeBody {
		payload.Body = article.Body
	}
	return payload
}
