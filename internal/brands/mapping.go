package brands

import (
	"net/url"

	"github.com/JaimeStill/storefront/pkg/query"
	"github.com/JaimeStill/storefront/pkg/repository"
)

var projection = query.NewProjectionMap("public", "brands", "b").
	Project("id", "ID").
	Project("name", "Name").
	Project("description", "Description").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "Name"}

var searchFields = []string{"Name", "Description"}

func scanBrand(s repository.Scanner) (Brand, error) {
	var b Brand
	err := s.Scan(&b.ID, &b.Name, &b.Description, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// Filters narrows brand listings.
type Filters struct {
	Name *string
}

func FiltersFromQuery(values url.Values) Filters {
	var name *string
	if n := values.Get("name"); n != "" {
		name = &n
	}
	return Filters{Name: name}
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereContains("Name", f.Name)
}
