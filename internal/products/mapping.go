package products

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/storefront/pkg/query"
	"github.com/JaimeStill/storefront/pkg/repository"
)

var projection = query.NewProjectionMap("public", "products", "p").
	Project("id", "ID").
	Project("name", "Name").
	Project("sku", "SKU").
	Project("description", "Description").
	Project("price_cents", "Price").
	Project("stock", "Stock").
	Project("status", "Status").
	Project("image_url", "ImageURL").
	Project("brand_id", "BrandID").
	Project("category_id", "CategoryID").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "Name"}

var searchFields = []string{"Name", "SKU", "Description"}

const columns = "id, name, sku, description, price_cents, stock, status, image_url, brand_id, category_id, created_at, updated_at"

func scanProduct(s repository.Scanner) (Product, error) {
	var p Product
	err := s.Scan(
		&p.ID, &p.Name, &p.SKU, &p.Description, &p.PriceCents, &p.Stock,
		&p.Status, &p.ImageURL, &p.BrandID, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Filters narrows product listings. Unparseable query values are ignored.
type Filters struct {
	BrandID    *uuid.UUID
	CategoryID *uuid.UUID
	Status     *Status
	MinPrice   *int64
	MaxPrice   *int64
	InStock    bool
}

func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if id, err := uuid.Parse(values.Get("brandId")); err == nil {
		f.BrandID = &id
	}
	if id, err := uuid.Parse(values.Get("categoryId")); err == nil {
		f.CategoryID = &id
	}
	if s := Status(values.Get("status")); s.Valid() {
		f.Status = &s
	}
	if n, err := strconv.ParseInt(values.Get("minPrice"), 10, 64); err == nil {
		f.MinPrice = &n
	}
	if n, err := strconv.ParseInt(values.Get("maxPrice"), 10, 64); err == nil {
		f.MaxPrice = &n
	}
	f.InStock, _ = strconv.ParseBool(values.Get("inStock"))

	return f
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.BrandID != nil {
		b.WhereEquals("BrandID", *f.BrandID)
	}
	if f.CategoryID != nil {
		b.WhereEquals("CategoryID", *f.CategoryID)
	}
	if f.Status != nil {
		b.WhereEquals("Status", string(*f.Status))
	}
	if f.MinPrice != nil {
		b.WhereAtLeast("Price", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		b.WhereAtMost("Price", *f.MaxPrice)
	}
	if f.InStock {
		b.WhereAtLeast("Stock", 1)
	}
	return b
}
