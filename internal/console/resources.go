package console

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/storefront/internal/brands"
	"github.com/JaimeStill/storefront/internal/categories"
	"github.com/JaimeStill/storefront/internal/orders"
	"github.com/JaimeStill/storefront/internal/posts"
	"github.com/JaimeStill/storefront/internal/present"
	"github.com/JaimeStill/storefront/internal/products"
	"github.com/JaimeStill/storefront/internal/reviews"
	"github.com/JaimeStill/storefront/internal/table"
	"github.com/JaimeStill/storefront/internal/toolbar"
	"github.com/JaimeStill/storefront/pkg/client"
)

func newResource[T any, C any, U any](
	name string,
	src *client.Collection[T, C, U],
	key func(T) uuid.UUID,
	cols []present.Column[T],
	pageSize int,
	notifier toolbar.Notifier,
) *resource[T, C, U] {
	ctrl := table.New[T, uuid.UUID](src, key, table.Options{PageSize: pageSize})
	return &resource[T, C, U]{
		name:     name,
		ctrl:     ctrl,
		tb:       toolbar.New[T, uuid.UUID, C, U](ctrl, src, notifier, singular(name)),
		cols:     cols,
		notifier: notifier,
	}
}

func singular(name string) string {
	switch name {
	case "categories":
		return "category"
	case "":
		return "record"
	}
	if name[len(name)-1] == 's' {
		return name[:len(name)-1]
	}
	return name
}

// screens builds one screen per storefront resource.
func screens(c *client.Client, pageSize int, n toolbar.Notifier) []screen {
	return []screen{
		productScreen(client.NewCollection[products.Product, products.CreateCommand, products.UpdateCommand](c, "products"), pageSize, n),
		orderScreen(client.NewCollection[orders.Order, orders.CreateCommand, orders.UpdateCommand](c, "orders"), pageSize, n),
		brandScreen(client.NewCollection[brands.Brand, brands.CreateCommand, brands.UpdateCommand](c, "brands"), pageSize, n),
		categoryScreen(client.NewCollection[categories.Category, categories.CreateCommand, categories.UpdateCommand](c, "categories"), pageSize, n),
		reviewScreen(client.NewCollection[reviews.Review, reviews.CreateCommand, reviews.UpdateCommand](c, "reviews"), pageSize, n),
		postScreen(client.NewCollection[posts.Post, posts.CreateCommand, posts.UpdateCommand](c, "posts"), pageSize, n),
	}
}

func productScreen(col *client.Collection[products.Product, products.CreateCommand, products.UpdateCommand], pageSize int, n toolbar.Notifier) screen {
	r := newResource("products", col, func(p products.Product) uuid.UUID { return p.ID }, []present.Column[products.Product]{
		{Title: "Name", SortKey: "Name", Width: 28, Render: func(p products.Product) string { return p.Name }},
		{Title: "SKU", SortKey: "SKU", Width: 12, Render: func(p products.Product) string { return p.SKU }},
		{Title: "Price", SortKey: "Price", Width: 11, Render: func(p products.Product) string { return present.Money(p.PriceCents) }},
		{Title: "Stock", SortKey: "Stock", Width: 6, Render: func(p products.Product) string { return strconv.Itoa(p.Stock) }},
		{Title: "Status", SortKey: "Status", Width: 10, Render: func(p products.Product) string { return string(p.Status) }},
		{Title: "Img", Width: 3, Render: func(p products.Product) string { return present.ImageMarker(p.ImageURL) }},
		{Title: "Updated", SortKey: "UpdatedAt", Width: 10, Render: func(p products.Product) string { return present.Date(p.UpdatedAt) }},
		{Title: "Actions", Width: 24, Render: productHint},
	}, pageSize, n)

	r.editValue = func(p products.Product) string {
		return fmt.Sprintf("%d.%02d", p.PriceCents/100, p.PriceCents%100)
	}
	r.edit = func(p products.Product, input string) (products.UpdateCommand, error) {
		cents, err := present.ParseMoney(input)
		if err != nil {
			return products.UpdateCommand{}, err
		}
		cmd := productUpdate(p)
		cmd.PriceCents = cents
		return cmd, nil
	}
	r.actions = func(r *resource[products.Product, products.CreateCommand, products.UpdateCommand]) []action {
		setStatus := func(s products.Status) func(context.Context, products.Product) error {
			return func(ctx context.Context, p products.Product) error {
				cmd := productUpdate(p)
				cmd.Status = s
				_, err := col.Update(ctx, p.ID, cmd)
				return err
			}
		}
		return []action{
			r.act("a", "activated", setStatus(products.StatusActive)),
			r.act("x", "archived", setStatus(products.StatusArchived)),
		}
	}
	return r
}

func productHint(p products.Product) string {
	switch p.Status {
	case products.StatusDraft:
		return present.Hint("a activate", "x archive")
	case products.StatusActive:
		return present.Hint("x archive")
	case products.StatusArchived:
		return present.Hint("a activate")
	}
	return ""
}

func productUpdate(p products.Product) products.UpdateCommand {
	return products.UpdateCommand{
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Stock:       p.Stock,
		Status:      p.Status,
		ImageURL:    p.ImageURL,
		BrandID:     p.BrandID,
		CategoryID:  p.CategoryID,
	}
}

var nextOrderStatus = map[orders.Status]orders.Status{
	orders.StatusPending: orders.StatusPaid,
	orders.StatusPaid:    orders.StatusShipped,
	orders.StatusShipped: orders.StatusDelivered,
}

func orderHint(o orders.Order) string {
	var advance, cancel string
	if next, ok := nextOrderStatus[o.Status]; ok {
		advance = "a " + string(next)
	}
	if o.Status == orders.StatusPending || o.Status == orders.StatusPaid {
		cancel = "x cancel"
	}
	return present.Hint(advance, cancel)
}

func orderScreen(col *client.Collection[orders.Order, orders.CreateCommand, orders.UpdateCommand], pageSize int, n toolbar.Notifier) screen {
	r := newResource("orders", col, func(o orders.Order) uuid.UUID { return o.ID }, []present.Column[orders.Order]{
		{Title: "Number", SortKey: "Number", Width: 18, Render: func(o orders.Order) string { return o.Number }},
		{Title: "Customer", SortKey: "CustomerName", Width: 22, Render: func(o orders.Order) string { return o.CustomerName }},
		{Title: "Email", Width: 26, Render: func(o orders.Order) string { return o.CustomerEmail }},
		{Title: "Status", SortKey: "Status", Width: 10, Render: func(o orders.Order) string { return string(o.Status) }},
		{Title: "Total", SortKey: "Total", Width: 11, Render: func(o orders.Order) string { return present.Money(o.TotalCents) }},
		{Title: "Placed", SortKey: "CreatedAt", Width: 10, Render: func(o orders.Order) string { return present.Date(o.CreatedAt) }},
		{Title: "Actions", Width: 24, Render: orderHint},
	}, pageSize, n)

	r.editValue = func(o orders.Order) string { return o.CustomerName }
	r.edit = func(o orders.Order, input string) (orders.UpdateCommand, error) {
		return orders.UpdateCommand{CustomerName: input, CustomerEmail: o.CustomerEmail}, nil
	}
	r.actions = func(r *resource[orders.Order, orders.CreateCommand, orders.UpdateCommand]) []action {
		transition := func(ctx context.Context, id uuid.UUID, s orders.Status) error {
			_, err := col.Act(ctx, http.MethodPost, id, "status", orders.TransitionCommand{Status: s})
			return err
		}
		return []action{
			r.act("a", "advanced", func(ctx context.Context, o orders.Order) error {
				next, ok := nextOrderStatus[o.Status]
				if !ok {
					return fmt.Errorf("order %s is %s and cannot advance", o.Number, o.Status)
				}
				return transition(ctx, o.ID, next)
			}),
			r.act("x", "cancelled", func(ctx context.Context, o orders.Order) error {
				return transition(ctx, o.ID, orders.StatusCancelled)
			}),
		}
	}
	return r
}

func brandScreen(col *client.Collection[brands.Brand, brands.CreateCommand, brands.UpdateCommand], pageSize int, n toolbar.Notifier) screen {
	r := newResource("brands", col, func(b brands.Brand) uuid.UUID { return b.ID }, []present.Column[brands.Brand]{
		{Title: "Name", SortKey: "Name", Width: 24, Render: func(b brands.Brand) string { return b.Name }},
		{Title: "Description", Width: 40, Render: func(b brands.Brand) string { return b.Description }},
		{Title: "Created", SortKey: "CreatedAt", Width: 10, Render: func(b brands.Brand) string { return present.Date(b.CreatedAt) }},
	}, pageSize, n)

	r.create = func(input string) (brands.CreateCommand, error) {
		return brands.CreateCommand{Name: input}, nil
	}
	r.editValue = func(b brands.Brand) string { return b.Name }
	r.edit = func(b brands.Brand, input string) (brands.UpdateCommand, error) {
		return brands.UpdateCommand{Name: input, Description: b.Description}, nil
	}
	return r
}

func categoryScreen(col *client.Collection[categories.Category, categories.CreateCommand, categories.UpdateCommand], pageSize int, n toolbar.Notifier) screen {
	r := newResource("categories", col, func(c categories.Category) uuid.UUID { return c.ID }, []present.Column[categories.Category]{
		{Title: "Name", SortKey: "Name", Width: 24, Render: func(c categories.Category) string { return c.Name }},
		{Title: "Slug", SortKey: "Slug", Width: 24, Render: func(c categories.Category) string { return c.Slug }},
		{Title: "Description", Width: 32, Render: func(c categories.Category) string { return c.Description }},
	}, pageSize, n)

	r.create = func(input string) (categories.CreateCommand, error) {
		return categories.CreateCommand{Name: input}, nil
	}
	r.editValue = func(c categories.Category) string { return c.Name }
	r.edit = func(c categories.Category, input string) (categories.UpdateCommand, error) {
		return categories.UpdateCommand{Name: input, Slug: c.Slug, Description: c.Description}, nil
	}
	return r
}

func reviewScreen(col *client.Collection[reviews.Review, reviews.CreateCommand, reviews.UpdateCommand], pageSize int, n toolbar.Notifier) screen {
	r := newResource("reviews", col, func(rv reviews.Review) uuid.UUID { return rv.ID }, []present.Column[reviews.Review]{
		{Title: "Author", SortKey: "Author", Width: 18, Render: func(rv reviews.Review) string { return rv.Author }},
		{Title: "Rating", SortKey: "Rating", Width: 6, Render: func(rv reviews.Review) string { return stars(rv.Rating) }},
		{Title: "Review", Width: 40, Render: func(rv reviews.Review) string { return rv.Body }},
		{Title: "Status", SortKey: "Approved", Width: 10, Render: func(rv reviews.Review) string {
			if rv.Approved {
				return "approved"
			}
			return "pending"
		}},
		{Title: "Posted", SortKey: "CreatedAt", Width: 10, Render: func(rv reviews.Review) string { return present.Date(rv.CreatedAt) }},
	}, pageSize, n)

	r.actions = func(r *resource[reviews.Review, reviews.CreateCommand, reviews.UpdateCommand]) []action {
		approve := func(v bool) func(context.Context, reviews.Review) error {
			return func(ctx context.Context, rv reviews.Review) error {
				_, err := col.Act(ctx, http.MethodPut, rv.ID, "approval", reviews.ApprovalCommand{Approved: v})
				return err
			}
		}
		return []action{
			r.act("a", "approved", approve(true)),
			r.act("x", "rejected", approve(false)),
		}
	}
	return r
}

func stars(n int) string {
	return strings.Repeat("*", min(max(n, 0), reviews.MaxRating))
}

func postScreen(col *client.Collection[posts.Post, posts.CreateCommand, posts.UpdateCommand], pageSize int, n toolbar.Notifier) screen {
	r := newResource("posts", col, func(p posts.Post) uuid.UUID { return p.ID }, []present.Column[posts.Post]{
		{Title: "Title", SortKey: "Title", Width: 32, Render: func(p posts.Post) string { return p.Title }},
		{Title: "Slug", SortKey: "Slug", Width: 24, Render: func(p posts.Post) string { return p.Slug }},
		{Title: "Status", SortKey: "Published", Width: 10, Render: func(p posts.Post) string {
			if p.Published {
				return "published"
			}
			return "draft"
		}},
		{Title: "Published", SortKey: "PublishedAt", Width: 10, Render: func(p posts.Post) string {
			return present.Optional(p.PublishedAt, present.Date)
		}},
	}, pageSize, n)

	update := func(p posts.Post) posts.UpdateCommand {
		return posts.UpdateCommand{Title: p.Title, Slug: p.Slug, Excerpt: p.Excerpt, Body: p.Body, Published: p.Published}
	}

	r.create = func(input string) (posts.CreateCommand, error) {
		return posts.CreateCommand{Title: input}, nil
	}
	r.editValue = func(p posts.Post) string { return p.Title }
	r.edit = func(p posts.Post, input string) (posts.UpdateCommand, error) {
		cmd := update(p)
		cmd.Title = input
		return cmd, nil
	}
	r.actions = func(r *resource[posts.Post, posts.CreateCommand, posts.UpdateCommand]) []action {
		return []action{
			r.act("p", "publish toggled", func(ctx context.Context, p posts.Post) error {
				cmd := update(p)
				cmd.Published = !p.Published
				_, err := col.Update(ctx, p.ID, cmd)
				return err
			}),
		}
	}
	return r
}
