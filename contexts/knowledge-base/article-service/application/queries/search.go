package queries

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"unicode"

	"vesalius/contexts/knowledge-base/article-service/ports"
)

// titleWeight biases ranking toward title hits over body hits.
const titleWeight = 3

// SearchResult pairs an article with its relevance score.
type SearchResult struct {
	Article ports.Article
	Score   int
}

// SearchUseCase ranks articles by query-term frequency, with title
// occurrences weighted over body occurrences. The corpus is small
// enough that ranking happens in process over the full listing.
type SearchUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u SearchUseCase) Execute(ctx context.Context, query string) ([]SearchResult, error) {
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil, nil
	}

	articles, err := u.Repository.ListArticles(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0)
	for _, article := range articles {
		titleFreq := termFrequencies(article.Title)
		bodyFreq := termFrequencies(article.Body)

		score := 0
		for _, term := range terms {
			score += titleWeight*titleFreq[term] + bodyFreq[term]
		}
		if score > 0 {
			results = append(results, SearchResult{Article: article, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Article.CreatedAt.After(results[j].Article.CreatedAt)
	})
	return results, nil
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func termFrequencies(text string) map[string]int {
	freq := make(map[string]int)
	for _, token := range tokenize(text) {
		freq[token]++
	}
	return freq
}
