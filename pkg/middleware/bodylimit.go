package middleware

import (
	"fmt"
	"net/http"

	"github.com/docker/go-units"

	"github.com/JaimeStill/storefront/pkg/handlers"
)

// ParseSize converts a human readable size such as "1MB" or "512KiB" into bytes.
func ParseSize(size string) (int64, error) {
	n, err := units.RAMInBytes(size)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", size, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid size %q: must be positive", size)
	}
	return n, nil
}

// BodyLimit returns middleware that caps request bodies at maxBytes.
// Reads beyond the limit fail, which JSON decoding reports as a bad request.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				handlers.RespondFailure(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
