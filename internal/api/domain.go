package api

import (
	"github.com/JaimeStill/storefront/internal/brands"
	"github.com/JaimeStill/storefront/internal/categories"
	"github.com/JaimeStill/storefront/internal/orders"
	"github.com/JaimeStill/storefront/internal/posts"
	"github.com/JaimeStill/storefront/internal/products"
	"github.com/JaimeStill/storefront/internal/reports"
	"github.com/JaimeStill/storefront/internal/reviews"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Brands     brands.System
	Categories categories.System
	Products   products.System
	Orders     orders.System
	Reviews    reviews.System
	Posts      posts.System
	Reports    reports.System
}

// NewDomain creates all domain systems from the API runtime. Every
// mutating system announces its changes on the runtime's broker.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.DB

	return &Domain{
		Brands:     brands.New(db, runtime.Notify, runtime.Logger, runtime.Pagination),
		Categories: categories.New(db, runtime.Notify, runtime.Logger, runtime.Pagination),
		Products:   products.New(db, runtime.Notify, runtime.Logger, runtime.Pagination),
		Orders:     orders.New(db, runtime.Notify, runtime.Logger, runtime.Pagination),
		Reviews:    reviews.New(db, runtime.Notify, runtime.Logger, runtime.Pagination),
		Posts:      posts.New(db, runtime.Notify, runtime.Logger, runtime.Pagination),
		Reports:    reports.New(db, runtime.Logger),
	}
}
