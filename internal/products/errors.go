package products

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound  = errors.New("product not found")
	ErrDuplicate = errors.New("product sku already exists")
	ErrInvalid   = errors.New("invalid product")

	// ErrReference covers both directions of a foreign key failure: a
	// missing brand or category on write, and orders or reviews still
	// pointing at a product on delete.
	ErrReference = errors.New("product reference conflict")
)

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrReference):
		return http.StatusConflict
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
