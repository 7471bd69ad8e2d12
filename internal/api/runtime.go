package api

import (
	"database/sql"
	"log/slog"

	"github.com/JaimeStill/storefront/internal/config"
	"github.com/JaimeStill/storefront/internal/infrastructure"
	"github.com/JaimeStill/storefront/pkg/notify"
	"github.com/JaimeStill/storefront/pkg/pagination"
)

// Runtime is the part of the infrastructure the API module reads.
type Runtime struct {
	Logger     *slog.Logger
	DB         *sql.DB
	Notify     notify.System
	Pagination pagination.Config
}

func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Logger:     infra.Logger.With("module", "api"),
		DB:         infra.Database.Connection(),
		Notify:     infra.Notify,
		Pagination: cfg.API.Pagination,
	}
}
