package categories_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/JaimeStill/storefront/internal/categories"
	"github.com/JaimeStill/storefront/pkg/logging"
	"github.com/JaimeStill/storefront/pkg/pagination"
)

func newSystem(t *testing.T) (categories.System, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
	return categories.New(db, nil, logging.Discard(), cfg), mock
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Home & Garden", "home-garden"},
		{"  Lamps ", "lamps"},
		{"Tables--and--Chairs!", "tables-and-chairs"},
		{"4K TVs", "4k-tvs"},
	}

	for _, tt := range tests {
		if got := categories.Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCreate_DerivesSlug(t *testing.T) {
	sys, mock := newSystem(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO categories").
		WithArgs("Home & Garden", "home-garden", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "description", "created_at", "updated_at"}).
			AddRow(uuid.NewString(), "Home & Garden", "home-garden", "", now, now))
	mock.ExpectCommit()

	c, err := sys.Create(context.Background(), categories.CreateCommand{Name: "Home & Garden"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if c.Slug != "home-garden" {
		t.Errorf("Slug = %q, want home-garden", c.Slug)
	}
}

func TestCreate_InvalidSlug(t *testing.T) {
	sys, _ := newSystem(t)

	tests := []categories.CreateCommand{
		{Name: ""},
		{Name: "Lamps", Slug: "Lamps"},
		{Name: "Lamps", Slug: "lamps_and_lights"},
	}

	for _, cmd := range tests {
		if _, err := sys.Create(context.Background(), cmd); !errors.Is(err, categories.ErrInvalid) {
			t.Errorf("Create(%+v) error = %v, want ErrInvalid", cmd, err)
		}
	}
}

func TestList_SearchCoversSlug(t *testing.T) {
	sys, mock := newSystem(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE (c.name ILIKE $1 ESCAPE '\' OR c.slug ILIKE $2 ESCAPE '\' OR c.description ILIKE $3 ESCAPE '\')`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY c.name ASC LIMIT 5 OFFSET 0")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "description", "created_at", "updated_at"}))

	search := "lamp"
	result, err := sys.List(context.Background(), pagination.PageRequest{PageSize: 5, Search: &search})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.TotalCount != 12 || result.TotalPages != 3 {
		t.Errorf("TotalCount = %d TotalPages = %d, want 12 and 3", result.TotalCount, result.TotalPages)
	}
}

func TestDelete_NotFound(t *testing.T) {
	sys, mock := newSystem(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM public.categories c").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	if _, err := sys.Delete(context.Background(), uuid.New()); !errors.Is(err, categories.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestFind_Error(t *testing.T) {
	sys, mock := newSystem(t)
	mock.ExpectQuery("FROM public.categories c").WillReturnError(sql.ErrConnDone)

	if _, err := sys.Find(context.Background(), uuid.New()); !errors.Is(err, sql.ErrConnDone) {
		t.Errorf("Find() error = %v, want ErrConnDone", err)
	}
}
