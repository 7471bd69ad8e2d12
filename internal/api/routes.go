package api

import (
	"net/http"

	"github.com/JaimeStill/storefront/internal/brands"
	"github.com/JaimeStill/storefront/internal/categories"
	"github.com/JaimeStill/storefront/internal/config"
	"github.com/JaimeStill/storefront/internal/orders"
	"github.com/JaimeStill/storefront/internal/posts"
	"github.com/JaimeStill/storefront/internal/products"
	"github.com/JaimeStill/storefront/internal/reports"
	"github.com/JaimeStill/storefront/internal/reviews"
	"github.com/JaimeStill/storefront/pkg/notify"
	"github.com/JaimeStill/storefront/pkg/openapi"
	"github.com/JaimeStill/storefront/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	spec *openapi.Spec,
	runtime *Runtime,
	domain *Domain,
	cfg *config.Config,
) {
	brandsHandler := brands.NewHandler(domain.Brands, runtime.Logger, runtime.Pagination)
	categoriesHandler := categories.NewHandler(domain.Categories, runtime.Logger, runtime.Pagination)
	productsHandler := products.NewHandler(domain.Products, runtime.Logger, runtime.Pagination)
	ordersHandler := orders.NewHandler(domain.Orders, runtime.Logger, runtime.Pagination)
	reviewsHandler := reviews.NewHandler(domain.Reviews, runtime.Logger, runtime.Pagination)
	postsHandler := posts.NewHandler(domain.Posts, runtime.Logger, runtime.Pagination)
	reportsHandler := reports.NewHandler(domain.Reports, runtime.Logger)

	routes.Register(
		mux,
		cfg.API.BasePath,
		spec,
		brandsHandler.Routes(),
		categoriesHandler.Routes(),
		productsHandler.Routes(),
		ordersHandler.Routes(),
		reviewsHandler.Routes(),
		postsHandler.Routes(),
		reportsHandler.Routes(),
		notificationRoutes(runtime),
	)
}

func notificationRoutes(runtime *Runtime) routes.Group {
	return routes.Group{
		Prefix:      "/notifications",
		Tags:        []string{"Notifications"},
		Description: "Real-time change notifications",
		Routes: []routes.Route{
			{
				Method:  "GET",
				Pattern: "/stream",
				Handler: notify.StreamHandler(runtime.Notify, runtime.Logger),
				OpenAPI: &openapi.Operation{
					Summary:     "Stream notifications",
					Description: "Server-sent events. Each data line is a JSON message with kind, resource, text and at.",
					Responses: map[int]*openapi.Response{
						200: {Description: "text/event-stream of notifications"},
						503: {Description: "Broker unavailable"},
					},
				},
			},
		},
	}
}
