package brands

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound  = errors.New("brand not found")
	ErrDuplicate = errors.New("brand name already exists")
	ErrInUse     = errors.New("brand is referenced by products")
	ErrInvalid   = errors.New("invalid brand")
)

// MapHTTPStatus maps domain errors to HTTP status codes.
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
