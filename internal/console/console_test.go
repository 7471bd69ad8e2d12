package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/JaimeStill/storefront/internal/brands"
	"github.com/JaimeStill/storefront/internal/categories"
	"github.com/JaimeStill/storefront/internal/toolbar"
	"github.com/JaimeStill/storefront/pkg/client"
	"github.com/JaimeStill/storefront/pkg/pagination"
)

type fakeAPI struct {
	mu       sync.Mutex
	brands   map[uuid.UUID]brands.Brand
	fail     bool
	searches []string
	deletes  int
}

func newFakeAPI(names ...string) *fakeAPI {
	api := &fakeAPI{brands: map[uuid.UUID]brands.Brand{}}
	for i, n := range names {
		id := uuid.New()
		api.brands[id] = brands.Brand{ID: id, Name: n, CreatedAt: time.Date(2026, 1, i+1, 0, 0, 0, 0, time.UTC)}
	}
	return api
}

func envelope(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if status >= 400 {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": data})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func (api *fakeAPI) list(w http.ResponseWriter, r *http.Request) {
	api.mu.Lock()
	defer api.mu.Unlock()

	if api.fail {
		envelope(w, http.StatusInternalServerError, "database unavailable")
		return
	}

	req := pagination.PageRequestFromQuery(r.URL.Query(), pagination.Config{DefaultPageSize: 10, MaxPageSize: 100})
	term := ""
	if req.Search != nil {
		term = strings.ToLower(*req.Search)
		api.searches = append(api.searches, term)
	}

	var items []brands.Brand
	for _, b := range api.brands {
		if strings.Contains(strings.ToLower(b.Name), term) {
			items = append(items, b)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	start := min(req.PageIndex*req.PageSize, len(items))
	end := min(start+req.PageSize, len(items))
	envelope(w, http.StatusOK, pagination.NewPageResult(append([]brands.Brand{}, items[start:end]...), len(items), req.PageIndex, req.PageSize))
}

func (api *fakeAPI) remove(w http.ResponseWriter, ids []uuid.UUID) {
	api.mu.Lock()
	defer api.mu.Unlock()

	for _, id := range ids {
		if _, ok := api.brands[id]; !ok {
			envelope(w, http.StatusNotFound, "brand not found")
			return
		}
	}
	for _, id := range ids {
		delete(api.brands, id)
	}
	api.deletes++
	envelope(w, http.StatusOK, map[string]int{"deleted": len(ids)})
}

func (api *fakeAPI) count() int {
	api.mu.Lock()
	defer api.mu.Unlock()
	return len(api.brands)
}

func (api *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/brands", api.list)
	mux.HandleFunc("GET /api/categories", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, pagination.NewPageResult([]categories.Category{}, 0, 0, 5))
	})
	mux.HandleFunc("DELETE /api/brands/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			envelope(w, http.StatusBadRequest, "bad id")
			return
		}
		api.remove(w, []uuid.UUID{id})
	})
	mux.HandleFunc("DELETE /api/brands", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			IDs []uuid.UUID `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			envelope(w, http.StatusBadRequest, "bad body")
			return
		}
		api.remove(w, body.IDs)
	})
	mux.HandleFunc("POST /api/brands", func(w http.ResponseWriter, r *http.Request) {
		var cmd brands.CreateCommand
		if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil || strings.TrimSpace(cmd.Name) == "" {
			envelope(w, http.StatusBadRequest, "name is required")
			return
		}
		api.mu.Lock()
		b := brands.Brand{ID: uuid.New(), Name: cmd.Name}
		api.brands[b.ID] = b
		api.mu.Unlock()
		envelope(w, http.StatusCreated, b)
	})
	return mux
}

type harness struct {
	api     *fakeAPI
	notices chan toolbar.Notice
	model   Model
}

func newHarness(t *testing.T, names ...string) *harness {
	t.Helper()
	api := newFakeAPI(names...)
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL + "/api")
	if err != nil {
		t.Fatalf("client.New() error = %v", err)
	}

	notices := make(chan toolbar.Notice, noticeQueue)
	n := toolbar.NotifierFunc(func(x toolbar.Notice) { notices <- x })

	scrs := []screen{
		brandScreen(client.NewCollection[brands.Brand, brands.CreateCommand, brands.UpdateCommand](c, "brands"), 5, n),
		categoryScreen(client.NewCollection[categories.Category, categories.CreateCommand, categories.UpdateCommand](c, "categories"), 5, n),
	}

	h := &harness{api: api, notices: notices, model: newModel(context.Background(), nil, scrs, notices, nil)}
	h.run(t, h.model.fetch(func(ctx context.Context, s screen) error { return s.Reload(ctx) }))
	return h
}

// press delivers msg and returns the command it produced.
func (h *harness) press(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

// run executes a fetch or action command and feeds its result back.
func (h *harness) run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	switch msg.(type) {
	case fetchedMsg, actionMsg:
	default:
		t.Fatalf("command produced %T, want fetch or action result", msg)
	}
	h.press(t, msg)
	return msg
}

func (h *harness) lastNotice(t *testing.T) toolbar.Notice {
	t.Helper()
	var last toolbar.Notice
	for {
		select {
		case n := <-h.notices:
			last = n
		default:
			return last
		}
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func TestConsole_InitialPage(t *testing.T) {
	h := newHarness(t, "Acme", "Globex", "Initech", "Umbrella", "Hooli", "Stark", "Wayne")

	st := h.model.current().Status()
	if st.TotalCount != 7 || st.TotalPages != 2 {
		t.Errorf("status = %+v, want 7 total over 2 pages", st)
	}
	if rows := h.model.table.Rows(); len(rows) != 5 {
		t.Errorf("rows = %d, want 5", len(rows))
	}

	view := h.model.View()
	if !strings.Contains(view, "page 1/2 · 7 total") {
		t.Errorf("footer missing from view:\n%s", view)
	}
}

func TestConsole_Paging(t *testing.T) {
	h := newHarness(t, "Acme", "Globex", "Initech", "Umbrella", "Hooli", "Stark", "Wayne")

	h.run(t, h.press(t, tea.KeyMsg{Type: tea.KeyRight}))
	st := h.model.current().Status()
	if st.PageIndex != 1 || len(h.model.table.Rows()) != 2 {
		t.Errorf("page = %d rows = %d, want page 1 with 2 rows", st.PageIndex, len(h.model.table.Rows()))
	}

	h.run(t, h.press(t, tea.KeyMsg{Type: tea.KeyLeft}))
	if st := h.model.current().Status(); st.PageIndex != 0 {
		t.Errorf("page = %d, want 0", st.PageIndex)
	}
}

func TestConsole_SearchResetsPage(t *testing.T) {
	h := newHarness(t, "Acme", "Acme Labs", "Globex", "Initech", "Umbrella", "Hooli", "Stark")
	h.run(t, h.press(t, tea.KeyMsg{Type: tea.KeyRight}))

	h.press(t, keyRunes("/"))
	if h.model.mode != modeSearch {
		t.Fatalf("mode = %v, want search", h.model.mode)
	}
	h.press(t, keyRunes("acme"))
	h.run(t, h.press(t, tea.KeyMsg{Type: tea.KeyEnter}))

	st := h.model.current().Status()
	if st.PageIndex != 0 || st.TotalCount != 2 || st.Search != "acme" {
		t.Errorf("status = %+v, want page 0 with 2 acme matches", st)
	}
	if h.model.mode != modeBrowse {
		t.Errorf("mode = %v, want browse after submit", h.model.mode)
	}
}

func TestConsole_TabClearsSelection(t *testing.T) {
	h := newHarness(t, "Acme", "Globex")

	h.press(t, space)
	if got := h.model.current().Status().Selected; got != 1 {
		t.Fatalf("selected = %d, want 1", got)
	}
	if mark := h.model.table.Rows()[0][0]; mark != selectMark {
		t.Errorf("row mark = %q, want %q", mark, selectMark)
	}

	brandsScreen := h.model.current()
	cmd := h.press(t, tea.KeyMsg{Type: tea.KeyTab})
	if h.model.active != 1 {
		t.Fatalf("active = %d, want 1", h.model.active)
	}
	if brandsScreen.Status().Selected != 0 {
		t.Error("selection kept after changing resource")
	}
	h.run(t, cmd)
	if !h.model.current().Status().Loaded {
		t.Error("categories not loaded on first visit")
	}
}

func TestConsole_DeleteSelected(t *testing.T) {
	h := newHarness(t, "Acme", "Globex", "Initech")

	h.press(t, space)
	h.press(t, tea.KeyMsg{Type: tea.KeyDown})
	h.press(t, space)

	if cmd := h.press(t, keyRunes("d")); cmd != nil {
		t.Fatal("delete ran before confirmation")
	}
	if h.model.mode != modeConfirmDelete {
		t.Fatalf("mode = %v, want confirm", h.model.mode)
	}

	msg := h.run(t, h.press(t, keyRunes("y")))
	if err := msg.(actionMsg).err; err != nil {
		t.Fatalf("delete error = %v", err)
	}

	if h.api.count() != 1 {
		t.Errorf("server has %d brands, want 1", h.api.count())
	}
	st := h.model.current().Status()
	if st.Selected != 0 || st.TotalCount != 1 {
		t.Errorf("status = %+v, want empty selection and 1 total", st)
	}
	if n := h.lastNotice(t); n.Level != toolbar.LevelInfo {
		t.Errorf("notice = %+v, want info", n)
	}
}

func TestConsole_DeleteDeclined(t *testing.T) {
	h := newHarness(t, "Acme")
	h.press(t, space)
	h.press(t, keyRunes("d"))

	if cmd := h.press(t, keyRunes("n")); cmd != nil {
		t.Error("declined delete produced a command")
	}
	if h.api.count() != 1 || h.model.current().Status().Selected != 1 {
		t.Error("declined delete changed state")
	}
}

func TestConsole_DeleteWithoutSelection(t *testing.T) {
	h := newHarness(t, "Acme")

	msg := h.run(t, h.press(t, keyRunes("d")))
	if err := msg.(actionMsg).err; !errors.Is(err, toolbar.ErrSelectNone) {
		t.Fatalf("error = %v, want ErrSelectNone", err)
	}
	if n := h.lastNotice(t); n.Kind != toolbar.KindValidation {
		t.Errorf("notice = %+v, want validation", n)
	}
}

func TestConsole_Create(t *testing.T) {
	h := newHarness(t, "Acme")

	h.press(t, keyRunes("n"))
	if h.model.mode != modeCreate {
		t.Fatalf("mode = %v, want create", h.model.mode)
	}
	h.press(t, keyRunes("Vandelay"))
	msg := h.run(t, h.press(t, tea.KeyMsg{Type: tea.KeyEnter}))
	if err := msg.(actionMsg).err; err != nil {
		t.Fatalf("create error = %v", err)
	}
	if st := h.model.current().Status(); st.TotalCount != 2 {
		t.Errorf("total = %d, want 2 after create", st.TotalCount)
	}
}

func TestConsole_EditRequiresOne(t *testing.T) {
	h := newHarness(t, "Acme", "Globex")

	h.press(t, keyRunes("e"))
	if h.model.mode != modeBrowse {
		t.Errorf("mode = %v, want browse without selection", h.model.mode)
	}
	if n := h.lastNotice(t); !strings.Contains(n.Message, "exactly one") {
		t.Errorf("notice = %+v", n)
	}

	h.press(t, space)
	h.press(t, keyRunes("e"))
	if h.model.mode != modeEdit || h.model.input.Value() != "Acme" {
		t.Errorf("mode = %v value = %q, want edit prefilled with Acme", h.model.mode, h.model.input.Value())
	}
}

func TestConsole_FetchFailureShowsPanel(t *testing.T) {
	h := newHarness(t, "Acme")
	h.api.mu.Lock()
	h.api.fail = true
	h.api.mu.Unlock()

	h.run(t, h.press(t, keyRunes("r")))

	view := h.model.View()
	if !strings.Contains(view, "could not load brands") || !strings.Contains(view, "database unavailable") {
		t.Errorf("view missing error panel:\n%s", view)
	}
	if len(h.model.table.Rows()) != 0 {
		t.Errorf("rows = %d, want 0 after failure", len(h.model.table.Rows()))
	}
}

func TestConsole_SortCycles(t *testing.T) {
	h := newHarness(t, "Acme", "Globex")

	h.run(t, h.press(t, keyRunes("s")))
	st := h.model.current().Status()
	if len(st.Sort) != 1 || st.Sort[0].Field != "Name" || st.Sort[0].Descending {
		t.Errorf("sort = %+v, want Name ascending", st.Sort)
	}
	if cols := h.model.table.Columns(); !strings.HasSuffix(cols[1].Title, "▲") {
		t.Errorf("header = %q, want sort marker", cols[1].Title)
	}
}

func TestConsole_Toasts(t *testing.T) {
	h := newHarness(t)

	for i := range maxToasts + 2 {
		h.press(t, noticeMsg(toolbar.Notice{Level: toolbar.LevelError, Kind: toolbar.KindBusiness, Message: fmt.Sprintf("notice %d", i)}))
	}
	if len(h.model.toasts) != maxToasts {
		t.Fatalf("toasts = %d, want %d", len(h.model.toasts), maxToasts)
	}

	first := h.model.toasts[0].id
	h.press(t, toastExpiredMsg{id: first})
	if len(h.model.toasts) != maxToasts-1 {
		t.Errorf("toasts = %d after expiry", len(h.model.toasts))
	}
}

func TestSingular(t *testing.T) {
	tests := map[string]string{
		"products":   "product",
		"categories": "category",
		"":           "record",
	}
	for in, want := range tests {
		if got := singular(in); got != want {
			t.Errorf("singular(%q) = %q, want %q", in, got, want)
		}
	}
}
