package orders

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound   = errors.New("order not found")
	ErrDuplicate  = errors.New("order number already exists")
	ErrInvalid    = errors.New("invalid order")
	ErrTransition = errors.New("order status transition not allowed")
)

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrTransition):
		return http.StatusConflict
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
