package products_test

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/storefront/internal/products"
	"github.com/JaimeStill/storefront/pkg/logging"
	"github.com/JaimeStill/storefront/pkg/pagination"
	"github.com/JaimeStill/storefront/pkg/query"
)

var productColumns = []string{
	"id", "name", "sku", "description", "price_cents", "stock",
	"status", "image_url", "brand_id", "category_id", "created_at", "updated_at",
}

func newSystem(t *testing.T) (products.System, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := pagination.Config{DefaultPageSize: 10, MaxPageSize: 100}
	return products.New(db, nil, logging.Discard(), cfg), mock
}

func TestFiltersFromQuery(t *testing.T) {
	brand := uuid.New()
	values := url.Values{
		"brandId":    {brand.String()},
		"categoryId": {"nope"},
		"status":     {"active"},
		"minPrice":   {"1000"},
		"maxPrice":   {"x"},
		"inStock":    {"true"},
	}

	f := products.FiltersFromQuery(values)

	if f.BrandID == nil || *f.BrandID != brand {
		t.Errorf("BrandID = %v, want %v", f.BrandID, brand)
	}
	if f.CategoryID != nil {
		t.Errorf("CategoryID = %v, want nil for invalid uuid", f.CategoryID)
	}
	if f.Status == nil || *f.Status != products.StatusActive {
		t.Errorf("Status = %v, want active", f.Status)
	}
	if f.MinPrice == nil || *f.MinPrice != 1000 || f.MaxPrice != nil {
		t.Errorf("MinPrice = %v MaxPrice = %v", f.MinPrice, f.MaxPrice)
	}
	if !f.InStock {
		t.Error("InStock = false, want true")
	}
}

func TestList_Filters(t *testing.T) {
	sys, mock := newSystem(t)
	status := products.StatusActive
	min := int64(500)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM public.products p WHERE p.status = $1 AND p.price_cents >= $2 AND p.stock >= $3")).
		WithArgs("active", int64(500), 1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY p.price_cents DESC LIMIT 10 OFFSET 30")).
		WillReturnRows(sqlmock.NewRows(productColumns))

	page := pagination.PageRequest{
		PageIndex: 3,
		PageSize:  10,
		Sort:      []query.SortField{{Field: "price", Descending: true}},
	}

	result, err := sys.List(context.Background(), page, products.Filters{Status: &status, MinPrice: &min, InStock: true})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(result.Items) != 0 || result.TotalCount != 25 || result.PageIndex != 3 {
		t.Errorf("result = %+v, want empty page past the end", result)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreate(t *testing.T) {
	sys, mock := newSystem(t)
	brand := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO products").
		WithArgs("Desk Lamp", "LAMP-1", "", int64(2599), 4, "draft", "", &brand, nil).
		WillReturnRows(sqlmock.NewRows(productColumns).AddRow(
			uuid.NewString(), "Desk Lamp", "LAMP-1", "", int64(2599), 4,
			"draft", "", brand.String(), nil, now, now,
		))
	mock.ExpectCommit()

	p, err := sys.Create(context.Background(), products.CreateCommand{
		Name:       "Desk Lamp",
		SKU:        " lamp-1 ",
		PriceCents: 2599,
		Stock:      4,
		BrandID:    &brand,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.Status != products.StatusDraft {
		t.Errorf("Status = %q, want draft", p.Status)
	}
	if p.BrandID == nil || *p.BrandID != brand || p.CategoryID != nil {
		t.Errorf("BrandID = %v CategoryID = %v", p.BrandID, p.CategoryID)
	}
}

func TestCreate_Invalid(t *testing.T) {
	sys, _ := newSystem(t)

	tests := []struct {
		name string
		cmd  products.CreateCommand
	}{
		{"no name", products.CreateCommand{SKU: "A"}},
		{"no sku", products.CreateCommand{Name: "A"}},
		{"negative price", products.CreateCommand{Name: "A", SKU: "A", PriceCents: -1}},
		{"negative stock", products.CreateCommand{Name: "A", SKU: "A", Stock: -1}},
		{"bad status", products.CreateCommand{Name: "A", SKU: "A", Status: "sold"}},
		{"relative image", products.CreateCommand{Name: "A", SKU: "A", ImageURL: "/img/a.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := sys.Create(context.Background(), tt.cmd); !errors.Is(err, products.ErrInvalid) {
				t.Errorf("Create() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestCreate_UnknownBrand(t *testing.T) {
	sys, mock := newSystem(t)
	brand := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO products").WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	_, err := sys.Create(context.Background(), products.CreateCommand{Name: "A", SKU: "A", BrandID: &brand})
	if !errors.Is(err, products.ErrReference) {
		t.Errorf("Create() error = %v, want ErrReference", err)
	}
}

func TestDelete_Ordered(t *testing.T) {
	sys, mock := newSystem(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM public.products p").WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	if _, err := sys.Delete(context.Background(), uuid.New()); !errors.Is(err, products.ErrReference) {
		t.Errorf("Delete() error = %v, want ErrReference", err)
	}
}
