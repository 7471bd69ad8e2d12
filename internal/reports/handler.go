package reports

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/JaimeStill/storefront/pkg/handlers"
	"github.com/JaimeStill/storefront/pkg/routes"
)

type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/reports",
		Tags:        []string{"Reports"},
		Description: "Sales reporting",
		Schemas:     Spec.Schemas(),
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/sales", Handler: h.Sales, OpenAPI: Spec.Sales},
		},
	}
}

func (h *Handler) Sales(w http.ResponseWriter, r *http.Request) {
	rng, err := ParseRange(r.URL.Query(), time.Now())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Sales(r.Context(), rng)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
