package reviews

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/storefront/pkg/query"
	"github.com/JaimeStill/storefront/pkg/repository"
)

var projection = query.NewProjectionMap("public", "reviews", "r").
	Project("id", "ID").
	Project("product_id", "ProductID").
	Project("author", "Author").
	Project("rating", "Rating").
	Project("body", "Body").
	Project("approved", "Approved").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}

var searchFields = []string{"Author", "Body"}

const columns = "id, product_id, author, rating, body, approved, created_at, updated_at"

func scanReview(s repository.Scanner) (Review, error) {
	var r Review
	err := s.Scan(&r.ID, &r.ProductID, &r.Author, &r.Rating, &r.Body, &r.Approved, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

type Filters struct {
	ProductID *uuid.UUID
	Approved  *bool
	MinRating *int
}

func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if id, err := uuid.Parse(values.Get("productId")); err == nil {
		f.ProductID = &id
	}
	if b, err := strconv.ParseBool(values.Get("approved")); err == nil {
		f.Approved = &b
	}
	if n, err := strconv.Atoi(values.Get("minRating")); err == nil {
		f.MinRating = &n
	}
	return f
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.ProductID != nil {
		b.WhereEquals("ProductID", *f.ProductID)
	}
	if f.Approved != nil {
		b.WhereEquals("Approved", *f.Approved)
	}
	if f.MinRating != nil {
		b.WhereAtLeast("Rating", *f.MinRating)
	}
	return b
}
