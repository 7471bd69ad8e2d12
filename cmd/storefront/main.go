package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/JaimeStill/storefront/internal/cart"
	"github.com/JaimeStill/storefront/internal/config"
	"github.com/JaimeStill/storefront/pkg/client"
)

const usage = `usage: storefront <command> [arguments]

commands:
  products list [-search term] [-page n] [-size n]
  cart add <product-id> [-qty n]
  cart set <product-id> <qty>
  cart remove <product-id>
  cart show
  cart clear
  cart checkout -name <name> -email <email>
  wish toggle <product-id>
  wish show
`

var errUsage = errors.New("invalid usage")

// app carries what every command needs.
type app struct {
	client *client.Client
	store  *cart.Store
	out    io.Writer
}

func main() {
	cfg, err := config.LoadClient(config.ClientConfigFile)
	if err != nil {
		log.Fatal("config load failed: ", err)
	}

	c, err := client.New(cfg.BaseURL, client.WithTimeout(cfg.TimeoutDuration()))
	if err != nil {
		log.Fatal("client init failed: ", err)
	}

	store, err := cart.Open(cart.FilePersister{Path: cfg.CartPath})
	if err != nil {
		log.Fatal("cart open failed: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{client: c, store: store, out: os.Stdout}
	if err := a.run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}

	group, cmd, rest := args[0], args[1], args[2:]
	switch group + " " + cmd {
	case "products list":
		return a.listProducts(ctx, rest)
	case "cart add":
		return a.cartAdd(ctx, rest)
	case "cart set":
		return a.cartSet(rest)
	case "cart remove":
		return a.cartRemove(rest)
	case "cart show":
		return a.cartShow()
	case "cart clear":
		return a.dispatch(cart.ClearCart{}, "cart cleared")
	case "cart checkout":
		return a.checkout(ctx, rest)
	case "wish toggle":
		return a.wishToggle(rest)
	case "wish show":
		return a.wishShow(ctx)
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, group+" "+cmd)
}

func (a *app) dispatch(act cart.Action, done string) error {
	if _, err := a.store.Dispatch(act); err != nil {
		return err
	}
	fmt.Fprintln(a.out, done)
	return nil
}
