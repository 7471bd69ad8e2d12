package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/storefront/internal/cart"
	"github.com/JaimeStill/storefront/internal/orders"
	"github.com/JaimeStill/storefront/internal/present"
	"github.com/JaimeStill/storefront/internal/products"
	"github.com/JaimeStill/storefront/pkg/client"
)

func parseID(args []string) (uuid.UUID, []string, error) {
	if len(args) == 0 {
		return uuid.Nil, nil, fmt.Errorf("%w: product id required", errUsage)
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("%w: invalid product id %q", errUsage, args[0])
	}
	return id, args[1:], nil
}

func (a *app) cartAdd(ctx context.Context, args []string) error {
	id, rest, err := parseID(args)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("cart add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	qty := fs.Int("qty", 1, "Quantity")
	if err := fs.Parse(rest); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	p, err := a.products().Find(ctx, id)
	if err != nil {
		if client.IsNotFound(err) {
			return fmt.Errorf("product %s does not exist", id)
		}
		return err
	}
	if p.Status != products.StatusActive {
		return fmt.Errorf("%s is not available", p.Name)
	}

	return a.dispatch(cart.AddItem{
		ProductID:      p.ID,
		Name:           p.Name,
		UnitPriceCents: p.PriceCents,
		Quantity:       *qty,
	}, fmt.Sprintf("added %d × %s", *qty, p.Name))
}

func (a *app) cartSet(args []string) error {
	id, rest, err := parseID(args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("%w: quantity required", errUsage)
	}
	qty, err := strconv.Atoi(rest[0])
	if err != nil {
		return fmt.Errorf("%w: invalid quantity %q", errUsage, rest[0])
	}
	return a.dispatch(cart.SetQuantity{ProductID: id, Quantity: qty}, "cart updated")
}

func (a *app) cartRemove(args []string) error {
	id, _, err := parseID(args)
	if err != nil {
		return err
	}
	return a.dispatch(cart.RemoveItem{ProductID: id}, "removed from cart")
}

var cartColumns = []present.Column[cart.Line]{
	{Title: "Product", Width: 32, Render: func(l cart.Line) string { return l.Name }},
	{Title: "Qty", Render: func(l cart.Line) string { return strconv.Itoa(l.Quantity) }},
	{Title: "Price", Render: func(l cart.Line) string { return present.Money(l.UnitPriceCents) }},
	{Title: "Subtotal", Render: func(l cart.Line) string { return present.Money(l.SubtotalCents()) }},
}

func (a *app) cartShow() error {
	s := a.store.State()
	if len(s.Cart) == 0 {
		fmt.Fprintln(a.out, "cart is empty")
		return nil
	}
	renderTable(a.out, present.Headers(cartColumns), present.Rows(cartColumns, s.Cart))
	fmt.Fprintf(a.out, "%d item(s) · total %s\n", s.Items(), present.Money(s.TotalCents()))
	return nil
}

// checkout places an order for the cart and empties it. Prices are set by
// the server.
func (a *app) checkout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cart checkout", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	name := fs.String("name", "", "Customer name")
	email := fs.String("email", "", "Customer email")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	s := a.store.State()
	if len(s.Cart) == 0 {
		return errors.New("cart is empty")
	}

	cmd := orders.CreateCommand{CustomerName: *name, CustomerEmail: *email}
	for _, l := range s.Cart {
		cmd.Items = append(cmd.Items, orders.ItemCommand{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	col := client.NewCollection[orders.Order, orders.CreateCommand, orders.UpdateCommand](a.client, "orders")
	order, err := col.Create(ctx, cmd)
	if err != nil {
		return err
	}

	if _, err := a.store.Dispatch(cart.ClearCart{}); err != nil {
		return fmt.Errorf("order %s placed but cart not cleared: %w", order.Number, err)
	}
	fmt.Fprintf(a.out, "order %s placed · total %s\n", order.Number, present.Money(order.TotalCents))
	return nil
}

func (a *app) wishToggle(args []string) error {
	id, _, err := parseID(args)
	if err != nil {
		return err
	}
	s, err := a.store.Dispatch(cart.ToggleWishlist{ProductID: id})
	if err != nil {
		return err
	}
	if s.Wished(id) {
		fmt.Fprintln(a.out, "added to wishlist")
	} else {
		fmt.Fprintln(a.out, "removed from wishlist")
	}
	return nil
}

func (a *app) wishShow(ctx context.Context) error {
	s := a.store.State()
	if len(s.Wishlist) == 0 {
		fmt.Fprintln(a.out, "wishlist is empty")
		return nil
	}

	col := a.products()
	var found []products.Product
	for _, id := range s.Wishlist {
		p, err := col.Find(ctx, id)
		if err != nil {
			if client.IsNotFound(err) {
				continue
			}
			return err
		}
		found = append(found, p)
	}

	if len(found) == 0 {
		fmt.Fprintln(a.out, "wishlisted products are no longer available")
		return nil
	}
	renderTable(a.out, present.Headers(productColumns), present.Rows(productColumns, found))
	return nil
}
