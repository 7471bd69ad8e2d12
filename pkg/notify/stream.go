package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/storefront/pkg/handlers"
)

// StreamHandler serves broker messages as server-sent events until the
// client disconnects or the broker closes.
func StreamHandler(broker Broker, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			handlers.RespondError(w, logger, http.StatusInternalServerError, fmt.Errorf("streaming unsupported"))
			return
		}

		messages, err := broker.Subscribe(r.Context())
		if err != nil {
			handlers.RespondError(w, logger, http.StatusServiceUnavailable, err)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		for msg := range messages {
			data, err := json.Marshal(msg)
			if err != nil {
				logger.Error("failed to marshal notification", "error", err)
				continue
			}

			fmt.Fprintf(w, "event: %s\n", msg.Kind)
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}
