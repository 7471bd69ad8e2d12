package reports

import (
	"errors"
	"net/http"
)

var ErrInvalidRange = errors.New("invalid report range")

func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidRange) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
