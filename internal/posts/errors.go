package posts

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound  = errors.New("post not found")
	ErrDuplicate = errors.New("post slug already exists")
	ErrInvalid   = errors.New("invalid post")
)

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
