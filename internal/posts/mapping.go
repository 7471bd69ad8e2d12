package posts

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/storefront/pkg/query"
	"github.com/JaimeStill/storefront/pkg/repository"
)

var projection = query.NewProjectionMap("public", "posts", "po").
	Project("id", "ID").
	Project("title", "Title").
	Project("slug", "Slug").
	Project("excerpt", "Excerpt").
	Project("body", "Body").
	Project("published", "Published").
	Project("published_at", "PublishedAt").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}

var searchFields = []string{"Title", "Slug", "Excerpt"}

const columns = "id, title, slug, excerpt, body, published, published_at, created_at, updated_at"

func scanPost(s repository.Scanner) (Post, error) {
	var p Post
	err := s.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Body, &p.Published, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

type Filters struct {
	Published *bool
}

func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if b, err := strconv.ParseBool(values.Get("published")); err == nil {
		f.Published = &b
	}
	return f
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.Published != nil {
		b.WhereEquals("Published", *f.Published)
	}
	return b
}
