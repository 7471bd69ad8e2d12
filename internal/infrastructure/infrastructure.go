// Package infrastructure assembles the systems every domain module depends
// on: lifecycle coordination, logging, the database pool and the
// notification broker.
package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/JaimeStill/storefront/internal/config"
	"github.com/JaimeStill/storefront/pkg/database"
	"github.com/JaimeStill/storefront/pkg/lifecycle"
	"github.com/JaimeStill/storefront/pkg/logging"
	"github.com/JaimeStill/storefront/pkg/notify"
)

type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Notify    notify.System

	logOutput io.Closer
}

// New builds the shared systems. Nothing connects until Start.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger, out, err := logging.Open(&cfg.Logging)
	if err != nil {
		return nil, err
	}

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		out.Close()
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Database:  db,
		Notify:    notify.New(&cfg.Notify, logger),
		logOutput: out,
	}, nil
}

func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Notify.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("notify start failed: %w", err)
	}
	return nil
}

// Ready reports startup completion and database reachability. A disabled
// or unreachable broker does not make the service unready.
func (i *Infrastructure) Ready(ctx context.Context) error {
	if !i.Lifecycle.Ready() {
		return errNotStarted
	}
	return i.Database.Ping(ctx)
}

// Close releases the log output. Call it after the lifecycle has shut down.
func (i *Infrastructure) Close() error {
	return i.logOutput.Close()
}

var errNotStarted = errors.New("startup in progress")
