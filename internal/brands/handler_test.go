package brands_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/storefront/internal/brands"
	"github.com/JaimeStill/storefront/pkg/logging"
	"github.com/JaimeStill/storefront/pkg/openapi"
	"github.com/JaimeStill/storefront/pkg/pagination"
	"github.com/JaimeStill/storefront/pkg/routes"
)

type fakeSystem struct {
	brands  map[uuid.UUID]brands.Brand
	lastReq pagination.PageRequest
}

func (f *fakeSystem) List(_ context.Context, page pagination.PageRequest, _ brands.Filters) (*pagination.PageResult[brands.Brand], error) {
	f.lastReq = page
	items := make([]brands.Brand, 0, len(f.brands))
	for _, b := range f.brands {
		items = append(items, b)
	}
	result := pagination.NewPageResult(items, len(items), page.PageIndex, page.PageSize)
	return &result, nil
}

func (f *fakeSystem) Find(_ context.Context, id uuid.UUID) (*brands.Brand, error) {
	b, ok := f.brands[id]
	if !ok {
		return nil, brands.ErrNotFound
	}
	return &b, nil
}

func (f *fakeSystem) Create(_ context.Context, cmd brands.CreateCommand) (*brands.Brand, error) {
	b := brands.Brand{ID: uuid.New(), Name: cmd.Name, Description: cmd.Description}
	f.brands[b.ID] = b
	return &b, nil
}

func (f *fakeSystem) Update(_ context.Context, id uuid.UUID, cmd brands.UpdateCommand) (*brands.Brand, error) {
	b, ok := f.brands[id]
	if !ok {
		return nil, brands.ErrNotFound
	}
	b.Name = cmd.Name
	f.brands[id] = b
	return &b, nil
}

func (f *fakeSystem) Delete(_ context.Context, ids ...uuid.UUID) (int, error) {
	for _, id := range ids {
		if _, ok := f.brands[id]; !ok {
			return 0, brands.ErrNotFound
		}
	}
	for _, id := range ids {
		delete(f.brands, id)
	}
	return len(ids), nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func newServer(t *testing.T, sys brands.System) *httptest.Server {
	t.Helper()
	h := brands.NewHandler(sys, logging.Discard(), testPagination)

	mux := http.NewServeMux()
	routes.Register(mux, "/api", openapi.NewSpec("test", "0"), h.Routes())

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (int, envelope) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp.StatusCode, env
}

func TestHandler_List(t *testing.T) {
	sys := &fakeSystem{brands: map[uuid.UUID]brands.Brand{uuid.New(): {Name: "Acme"}}}
	srv := newServer(t, sys)

	status, env := do(t, "GET", srv.URL+"/brands?pageIndex=-3&pageSize=500&textSearch=ac", "")
	if status != http.StatusOK || !env.Success {
		t.Fatalf("status = %d success = %v", status, env.Success)
	}

	var page pagination.PageResult[brands.Brand]
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if page.TotalCount != 1 || len(page.Items) != 1 {
		t.Errorf("page = %+v", page)
	}
	if sys.lastReq.PageIndex != 0 || sys.lastReq.PageSize != testPagination.MaxPageSize {
		t.Errorf("request not normalized: %+v", sys.lastReq)
	}
	if sys.lastReq.Search == nil || *sys.lastReq.Search != "ac" {
		t.Errorf("Search = %v, want ac", sys.lastReq.Search)
	}
}

func TestHandler_Find(t *testing.T) {
	srv := newServer(t, &fakeSystem{brands: map[uuid.UUID]brands.Brand{}})

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"bad id", "/brands/not-a-uuid", http.StatusBadRequest},
		{"missing", "/brands/" + uuid.NewString(), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := do(t, "GET", srv.URL+tt.path, "")
			if status != tt.status {
				t.Errorf("status = %d, want %d", status, tt.status)
			}
			if env.Success || env.Message == "" {
				t.Errorf("envelope = %+v, want failure with message", env)
			}
		})
	}
}

func TestHandler_Create(t *testing.T) {
	srv := newServer(t, &fakeSystem{brands: map[uuid.UUID]brands.Brand{}})

	status, env := do(t, "POST", srv.URL+"/brands", `{"name":"Acme","description":"Tools"}`)
	if status != http.StatusCreated || !env.Success {
		t.Fatalf("status = %d envelope = %+v", status, env)
	}

	status, env = do(t, "POST", srv.URL+"/brands", `{"name":"Acme","color":"red"}`)
	if status != http.StatusBadRequest || env.Success {
		t.Errorf("unknown field: status = %d envelope = %+v", status, env)
	}
}

func TestHandler_DeleteMany(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	sys := &fakeSystem{brands: map[uuid.UUID]brands.Brand{a: {ID: a}, b: {ID: b}}}
	srv := newServer(t, sys)

	status, _ := do(t, "DELETE", srv.URL+"/brands", `{"ids":["`+a.String()+`","`+uuid.NewString()+`"]}`)
	if status != http.StatusNotFound {
		t.Errorf("unknown id: status = %d, want 404", status)
	}
	if len(sys.brands) != 2 {
		t.Errorf("partial delete removed records: %d left", len(sys.brands))
	}

	status, env := do(t, "DELETE", srv.URL+"/brands", `{"ids":["`+a.String()+`","`+b.String()+`","`+a.String()+`"]}`)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if string(env.Data) != `{"deleted":2}` {
		t.Errorf("data = %s, want deleted 2", env.Data)
	}

	status, _ = do(t, "DELETE", srv.URL+"/brands", `{"ids":[]}`)
	if status != http.StatusBadRequest {
		t.Errorf("empty ids: status = %d, want 400", status)
	}
}
