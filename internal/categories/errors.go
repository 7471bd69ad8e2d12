package categories

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound  = errors.New("category not found")
	ErrDuplicate = errors.New("category slug already exists")
	ErrInUse     = errors.New("category is referenced by products")
	ErrInvalid   = errors.New("invalid category")
)

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrInUse):
		return http.StatusConflict
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
