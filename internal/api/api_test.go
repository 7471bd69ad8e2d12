package api_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/JaimeStill/storefront/internal/api"
	"github.com/JaimeStill/storefront/internal/config"
	"github.com/JaimeStill/storefront/internal/infrastructure"
	"github.com/JaimeStill/storefront/pkg/lifecycle"
	"github.com/JaimeStill/storefront/pkg/logging"
	"github.com/JaimeStill/storefront/pkg/module"
	"github.com/JaimeStill/storefront/pkg/notify"
)

type mockDatabase struct {
	db *sql.DB
}

func (m mockDatabase) Connection() *sql.DB { return m.db }
func (m mockDatabase) Start(*lifecycle.Coordinator) error { return nil }
func (m mockDatabase) Ping(ctx context.Context) error { return m.db.PingContext(ctx) }

func newAPI(t *testing.T) (*httptest.Server, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{}
	cfg.Database.Name = "shop"
	cfg.Database.User = "shop"
	cfg.API.OpenAPI.Servers = []string{"http://shop.test/api"}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	infra := &infrastructure.Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logging.Discard(),
		Database:  mockDatabase{db: db},
		Notify:    notify.New(&cfg.Notify, logging.Discard()),
	}

	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	router := module.NewRouter()
	router.Mount(m)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, mock
}

func TestModule_OpenAPIDocument(t *testing.T) {
	srv, _ := newAPI(t)

	resp, err := http.Get(srv.URL + "/api/openapi.json")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var doc struct {
		Servers []struct {
			URL string `json:"url"`
		} `json:"servers"`
		Paths map[string]json.RawMessage `json:"paths"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode error = %v", err)
	}

	if len(doc.Servers) != 1 || doc.Servers[0].URL != "http://shop.test/api" {
		t.Errorf("servers = %+v", doc.Servers)
	}

	for _, path := range []string{
		"/api/brands",
		"/api/categories",
		"/api/products",
		"/api/orders",
		"/api/reviews",
		"/api/posts",
		"/api/reports/sales",
		"/api/notifications/stream",
	} {
		if _, ok := doc.Paths[path]; !ok {
			t.Errorf("openapi paths missing %s", path)
		}
	}
}

func TestModule_ListBrands(t *testing.T) {
	srv, mock := newAPI(t)

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at"}).
			AddRow(uuid.New().String(), "Northwind", "Kitchen", now, now))

	resp, err := http.Get(srv.URL + "/api/brands/?pageSize=5")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("response missing X-Request-ID")
	}

	var env struct {
		Success bool `json:"success"`
		Data    struct {
			Items      []map[string]any `json:"items"`
			TotalCount int              `json:"totalCount"`
			PageSize   int              `json:"pageSize"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if !env.Success || env.Data.TotalCount != 1 || env.Data.PageSize != 5 || len(env.Data.Items) != 1 {
		t.Errorf("envelope = %+v", env)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestModule_BodyLimit(t *testing.T) {
	srv, _ := newAPI(t)

	body := `{"name":"` + strings.Repeat("x", 2<<20) + `"}`
	resp, err := http.Post(srv.URL+"/api/brands", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", resp.StatusCode)
	}
}
