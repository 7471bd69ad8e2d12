package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JaimeStill/storefront/internal/config"
	"github.com/JaimeStill/storefront/internal/console"
	"github.com/JaimeStill/storefront/pkg/client"
	"github.com/JaimeStill/storefront/pkg/logging"
)

func main() {
	path := flag.String("config", config.ClientConfigFile, "Client configuration file")
	flag.Parse()

	cfg, err := config.LoadClient(*path)
	if err != nil {
		log.Fatal("config load failed: ", err)
	}

	logger, closer, err := logging.Open(&cfg.Logging)
	if err != nil {
		log.Fatal("logger init failed: ", err)
	}
	defer closer.Close()

	c, err := client.New(cfg.BaseURL, client.WithTimeout(cfg.TimeoutDuration()))
	if err != nil {
		log.Fatal("client init failed: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("console starting", "api", c.BaseURL())

	model := console.New(console.Options{
		Context:  ctx,
		Client:   c,
		PageSize: cfg.PageSize,
		Logger:   logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		logger.Error("console exited", "error", err)
		log.Fatal("console failed: ", err)
	}

	logger.Info("console stopped")
}
