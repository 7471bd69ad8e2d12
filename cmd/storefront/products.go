package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/JaimeStill/storefront/internal/present"
	"github.com/JaimeStill/storefront/internal/products"
	"github.com/JaimeStill/storefront/pkg/client"
	"github.com/JaimeStill/storefront/pkg/pagination"
)

var productColumns = []present.Column[products.Product]{
	{Title: "ID", Render: func(p products.Product) string { return p.ID.String() }},
	{Title: "Name", Width: 32, Render: func(p products.Product) string { return p.Name }},
	{Title: "Price", Render: func(p products.Product) string { return present.Money(p.PriceCents) }},
	{Title: "Stock", Render: func(p products.Product) string { return strconv.Itoa(p.Stock) }},
	{Title: "Status", Render: func(p products.Product) string { return present.Badge(string(p.Status)) }},
	{Title: "Img", Render: func(p products.Product) string { return present.ImageMarker(p.ImageURL) }},
}

func (a *app) products() *client.Collection[products.Product, products.CreateCommand, products.UpdateCommand] {
	return client.NewCollection[products.Product, products.CreateCommand, products.UpdateCommand](a.client, "products")
}

func (a *app) listProducts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	search := fs.String("search", "", "Search term")
	page := fs.Int("page", 1, "Page number, starting at 1")
	size := fs.Int("size", 20, "Page size")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	req := pagination.PageRequest{PageIndex: max(*page-1, 0), PageSize: max(*size, 1)}
	if *search != "" {
		req.Search = search
	}

	result, err := a.products().List(ctx, req)
	if err != nil {
		return err
	}

	if len(result.Items) == 0 {
		fmt.Fprintln(a.out, "no products found")
		return nil
	}

	renderTable(a.out, present.Headers(productColumns), present.Rows(productColumns, result.Items))
	fmt.Fprintf(a.out, "page %d/%d · %d total\n", result.PageIndex+1, max(result.TotalPages, 1), result.TotalCount)
	return nil
}

func renderTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(w, t.Render())
}
