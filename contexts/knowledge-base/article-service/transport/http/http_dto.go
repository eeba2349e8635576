package http

type ArticlePayload struct {
	ArticleID  string `json:"article_id"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name,omitempty"`
	Title      string `json:"title"`
	Body       string `json:"body,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	CreatedAt  string `json:"created_at"`
}

type PublishRequest struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	ImagePrompt string `json:"image_prompt,omitempty"`
}

type PublishResponse struct {
	Success bool           `json:"success"`
	Data    ArticlePayload `json:"data"`
}

type IllustrateRequest struct {
	Prompt string `json:"prompt"`
}

type IllustrateResponse struct {
	Success bool           `json:"success"`
	Data    ArticlePayload `json:"data"`
}

type GetArticleResponse struct {
	Success bool           `json:"success"`
	Data    ArticlePayload `json:"data"`
}

type ListArticlesResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Articles []ArticlePayload `json:"articles"`
	} `json:"data"`
}

type SearchResultPayload struct {
	Article ArticlePayload `json:"article"`
	Score   int            `json:"score"`
}

type SearchResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Results []SearchResultPayload `json:"results"`
	} `json:"data"`
}
