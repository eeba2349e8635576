package errors

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid request payload")
	ErrArticleNotFound  = errors.New("article not found")
	ErrNotArticleAuthor = errors.New("article belongs to a different author")
)
