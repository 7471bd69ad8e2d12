package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/storefront/internal/cart"
	"github.com/JaimeStill/storefront/internal/orders"
	"github.com/JaimeStill/storefront/internal/products"
	"github.com/JaimeStill/storefront/pkg/client"
	"github.com/JaimeStill/storefront/pkg/pagination"
)

var (
	mugID     = uuid.MustParse("11111111-1111-4111-8111-111111111111")
	posterID  = uuid.MustParse("22222222-2222-4222-8222-222222222222")
	missingID = uuid.MustParse("33333333-3333-4333-8333-333333333333")
)

var catalog = map[uuid.UUID]products.Product{
	mugID:    {ID: mugID, Name: "Enamel Mug", SKU: "MUG-1", PriceCents: 1450, Stock: 10, Status: products.StatusActive},
	posterID: {ID: posterID, Name: "Tour Poster", SKU: "POS-1", PriceCents: 900, Status: products.StatusArchived},
}

func respond(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]any{"success": status < 400}
	if data != nil {
		body["data"] = data
	}
	if message != "" {
		body["message"] = message
	}
	_ = json.NewEncoder(w).Encode(body)
}

type testEnv struct {
	app *app
	out *bytes.Buffer

	mu     sync.Mutex
	orders []orders.CreateCommand
}

func (e *testEnv) placed() []orders.CreateCommand {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]orders.CreateCommand(nil), e.orders...)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{out: &bytes.Buffer{}}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := uuid.Parse(r.PathValue("id"))
		p, ok := catalog[id]
		if !ok {
			respond(w, http.StatusNotFound, nil, "product not found")
			return
		}
		respond(w, http.StatusOK, p, "")
	})
	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		req := pagination.PageRequestFromQuery(r.URL.Query(), pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
		items := []products.Product{catalog[mugID]}
		respond(w, http.StatusOK, pagination.NewPageResult(items, 1, req.PageIndex, req.PageSize), "")
	})
	mux.HandleFunc("POST /api/orders", func(w http.ResponseWriter, r *http.Request) {
		var cmd orders.CreateCommand
		if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
			respond(w, http.StatusBadRequest, nil, "bad body")
			return
		}
		if cmd.CustomerEmail == "" {
			respond(w, http.StatusBadRequest, nil, "customer email required")
			return
		}
		env.mu.Lock()
		env.orders = append(env.orders, cmd)
		env.mu.Unlock()
		var total int64
		for _, it := range cmd.Items {
			total += catalog[it.ProductID].PriceCents * int64(it.Quantity)
		}
		respond(w, http.StatusCreated, orders.Order{ID: uuid.New(), Number: "SO-20261016-ABC123", Status: orders.StatusPending, TotalCents: total}, "")
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL + "/api")
	if err != nil {
		t.Fatalf("client.New() error = %v", err)
	}
	store, err := cart.Open(cart.FilePersister{Path: filepath.Join(t.TempDir(), "cart.toml")})
	if err != nil {
		t.Fatalf("cart.Open() error = %v", err)
	}

	env.app = &app{client: c, store: store, out: env.out}
	return env
}

func (e *testEnv) run(t *testing.T, args ...string) error {
	t.Helper()
	e.out.Reset()
	return e.app.run(context.Background(), args)
}

func TestCartAddAndShow(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run(t, "cart", "add", mugID.String(), "-qty", "2"); err != nil {
		t.Fatalf("cart add error = %v", err)
	}
	if err := env.run(t, "cart", "show"); err != nil {
		t.Fatalf("cart show error = %v", err)
	}

	out := env.out.String()
	if !strings.Contains(out, "Enamel Mug") || !strings.Contains(out, "2 item(s) · total $29.00") {
		t.Errorf("cart show output:\n%s", out)
	}
}

func TestCartAdd_Rejected(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"archived product", []string{"cart", "add", posterID.String()}},
		{"unknown product", []string{"cart", "add", missingID.String()}},
		{"bad id", []string{"cart", "add", "mug"}},
		{"zero quantity", []string{"cart", "add", mugID.String(), "-qty", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			if err := env.run(t, tt.args...); err == nil {
				t.Fatal("expected error")
			}
			if s := env.app.store.State(); len(s.Cart) != 0 {
				t.Errorf("cart = %+v, want empty", s.Cart)
			}
		})
	}
}

func TestCartSetAndRemove(t *testing.T) {
	env := newTestEnv(t)
	env.run(t, "cart", "add", mugID.String())

	if err := env.run(t, "cart", "set", mugID.String(), "5"); err != nil {
		t.Fatalf("cart set error = %v", err)
	}
	if got := env.app.store.State().Items(); got != 5 {
		t.Errorf("items = %d, want 5", got)
	}

	if err := env.run(t, "cart", "set", mugID.String(), "0"); err != nil {
		t.Fatalf("cart set 0 error = %v", err)
	}
	if got := len(env.app.store.State().Cart); got != 0 {
		t.Errorf("lines = %d, want 0 after setting quantity 0", got)
	}
}

func TestCheckout(t *testing.T) {
	env := newTestEnv(t)
	env.run(t, "cart", "add", mugID.String(), "-qty", "3")

	if err := env.run(t, "cart", "checkout", "-name", "Ada", "-email", "ada@example.com"); err != nil {
		t.Fatalf("checkout error = %v", err)
	}
	placed := env.placed()
	if len(placed) != 1 || len(placed[0].Items) != 1 || placed[0].Items[0].Quantity != 3 {
		t.Fatalf("orders = %+v", placed)
	}
	if !strings.Contains(env.out.String(), "SO-20261016-ABC123") {
		t.Errorf("output = %q", env.out.String())
	}
	if len(env.app.store.State().Cart) != 0 {
		t.Error("cart not cleared after checkout")
	}
}

func TestCheckout_FailureKeepsCart(t *testing.T) {
	env := newTestEnv(t)
	env.run(t, "cart", "add", mugID.String())

	err := env.run(t, "cart", "checkout", "-name", "Ada")
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("error = %v, want 400 API error", err)
	}
	if len(env.app.store.State().Cart) != 1 {
		t.Error("cart cleared after failed checkout")
	}
}

func TestWishlist(t *testing.T) {
	env := newTestEnv(t)

	env.run(t, "wish", "toggle", mugID.String())
	env.run(t, "wish", "toggle", missingID.String())
	if err := env.run(t, "wish", "show"); err != nil {
		t.Fatalf("wish show error = %v", err)
	}
	if out := env.out.String(); !strings.Contains(out, "Enamel Mug") {
		t.Errorf("wish show output:\n%s", out)
	}

	env.run(t, "wish", "toggle", mugID.String())
	if env.app.store.State().Wished(mugID) {
		t.Error("mug still wished after second toggle")
	}
}

func TestProductsList(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run(t, "products", "list", "-search", "mug"); err != nil {
		t.Fatalf("products list error = %v", err)
	}
	out := env.out.String()
	if !strings.Contains(out, "Enamel Mug") || !strings.Contains(out, "page 1/1 · 1 total") {
		t.Errorf("output:\n%s", out)
	}
}

func TestUsage(t *testing.T) {
	env := newTestEnv(t)
	for _, args := range [][]string{nil, {"cart"}, {"cart", "explode"}} {
		if err := env.run(t, args...); !errors.Is(err, errUsage) {
			t.Errorf("run(%v) error = %v, want usage error", args, err)
		}
	}
}
