package orders

import (
	"net/url"

	"github.com/JaimeStill/storefront/pkg/query"
	"github.com/JaimeStill/storefront/pkg/repository"
)

var projection = query.NewProjectionMap("public", "orders", "o").
	Project("id", "ID").
	Project("number", "Number").
	Project("customer_name", "CustomerName").
	Project("customer_email", "CustomerEmail").
	Project("status", "Status").
	Project("total_cents", "Total").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}

var searchFields = []string{"Number", "CustomerName", "CustomerEmail"}

const columns = "id, number, customer_name, customer_email, status, total_cents, created_at, updated_at"

func scanOrder(s repository.Scanner) (Order, error) {
	var o Order
	err := s.Scan(&o.ID, &o.Number, &o.CustomerName, &o.CustomerEmail, &o.Status, &o.TotalCents, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func scanItem(s repository.Scanner) (Item, error) {
	var i Item
	err := s.Scan(&i.ProductID, &i.Quantity, &i.UnitPriceCents)
	return i, err
}

type Filters struct {
	Status   *Status
	Customer *string
}

func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if s := Status(values.Get("status")); s.Valid() {
		f.Status = &s
	}
	if c := values.Get("customer"); c != "" {
		f.Customer = &c
	}
	return f
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.Status != nil {
		b.WhereEquals("Status", string(*f.Status))
	}
	return b.WhereContains("CustomerEmail", f.Customer)
}
