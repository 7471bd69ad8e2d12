// Package table drives a remote-backed paginated table: it owns the page
// request, the selection set and the last successful page, and refetches
// through a client.Provider whenever the request changes.
package table

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/JaimeStill/storefront/pkg/client"
	"github.com/JaimeStill/storefront/pkg/pagination"
	"github.com/JaimeStill/storefront/pkg/query"
)

// DefaultPageSize applies when Options.PageSize is not positive.
const DefaultPageSize = 10

// ErrSuperseded is returned by a fetch that completed after a newer fetch
// started. Its result is discarded.
var ErrSuperseded = errors.New("fetch superseded by a newer request")

type Options struct {
	PageSize int
	Sort     []query.SortField
}

// State is a snapshot of the controller. While Loading, Items and
// TotalCount still describe the previous successful page.
type State[T any, K comparable] struct {
	Request    pagination.PageRequest
	Items      []T
	TotalCount int
	TotalPages int
	Loading    bool
	Loaded     bool
	Err        error
	Selection  []K
}

// Controller is safe for concurrent use.
type Controller[T any, K comparable] struct {
	provider client.Provider[T]
	key      func(T) K
	pageSize int

	mu         sync.Mutex
	req        pagination.PageRequest
	items      []T
	totalCount int
	totalPages int
	loading    bool
	loaded     bool
	err        error
	selection  []K
	selected   map[K]struct{}
	seq        uint64
	cancel     context.CancelFunc
}

// New creates a controller. No fetch happens until one of the request
// methods or Reload is called.
func New[T any, K comparable](provider client.Provider[T], key func(T) K, opts Options) *Controller[T, K] {
	size := opts.PageSize
	if size < 1 {
		size = DefaultPageSize
	}

	return &Controller[T, K]{
		provider: provider,
		key:      key,
		pageSize: size,
		req: pagination.PageRequest{
			PageIndex: 0,
			PageSize:  size,
			Sort:      slices.Clone(opts.Sort),
		},
		selected: make(map[K]struct{}),
	}
}

// Reload refetches the current request.
func (c *Controller[T, K]) Reload(ctx context.Context) error {
	return c.fetch(ctx, nil)
}

// SetPage moves to page n. Negative values are clamped to 0.
func (c *Controller[T, K]) SetPage(ctx context.Context, n int) error {
	return c.fetch(ctx, func(r *pagination.PageRequest) {
		r.PageIndex = max(n, 0)
	})
}

// NextPage advances one page when a further page exists.
func (c *Controller[T, K]) NextPage(ctx context.Context) error {
	c.mu.Lock()
	next := c.req.PageIndex + 1
	last := c.totalPages
	c.mu.Unlock()

	if next >= last {
		return nil
	}
	return c.SetPage(ctx, next)
}

// PrevPage steps back one page unless already on the first.
func (c *Controller[T, K]) PrevPage(ctx context.Context) error {
	c.mu.Lock()
	prev := c.req.PageIndex - 1
	c.mu.Unlock()

	if prev < 0 {
		return nil
	}
	return c.SetPage(ctx, prev)
}

// SetPageSize changes the page size and returns to the first page.
func (c *Controller[T, K]) SetPageSize(ctx context.Context, n int) error {
	if n < 1 {
		n = c.pageSize
	}
	return c.fetch(ctx, func(r *pagination.PageRequest) {
		r.PageSize = n
		r.PageIndex = 0
	})
}

// Search filters by term and returns to the first page. A blank term
// clears the search.
func (c *Controller[T, K]) Search(ctx context.Context, term string) error {
	term = strings.TrimSpace(term)
	return c.fetch(ctx, func(r *pagination.PageRequest) {
		r.PageIndex = 0
		if term == "" {
			r.Search = nil
			return
		}
		r.Search = &term
	})
}

// Sort replaces the sort order. No fields restores the server default.
func (c *Controller[T, K]) Sort(ctx context.Context, fields ...query.SortField) error {
	return c.fetch(ctx, func(r *pagination.PageRequest) {
		r.Sort = slices.Clone(fields)
	})
}

func (c *Controller[T, K]) fetch(ctx context.Context, mutate func(*pagination.PageRequest)) error {
	c.mu.Lock()
	if mutate != nil {
		mutate(&c.req)
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	seq := c.seq
	fctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.loading = true
	req := copyRequest(c.req)
	c.mu.Unlock()

	result, err := c.provider.List(fctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	defer cancel()

	if seq != c.seq {
		return ErrSuperseded
	}

	c.cancel = nil
	c.loading = false

	if err != nil {
		c.items = nil
		c.totalCount = 0
		c.totalPages = 0
		c.err = err
		return err
	}

	c.items = result.Items
	c.totalCount = result.TotalCount
	c.totalPages = result.TotalPages
	c.loaded = true
	c.err = nil
	return nil
}

// Select adds k to the selection.
func (c *Controller[T, K]) Select(k K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.add(k)
}

// Deselect removes k from the selection.
func (c *Controller[T, K]) Deselect(k K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(k)
}

// Toggle flips the selection of k and reports whether it is now selected.
func (c *Controller[T, K]) Toggle(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.selected[k]; ok {
		c.remove(k)
		return false
	}
	c.add(k)
	return true
}

// ClearSelection empties the selection.
func (c *Controller[T, K]) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection = nil
	clear(c.selected)
}

// Selected reports whether k is selected.
func (c *Controller[T, K]) Selected(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.selected[k]
	return ok
}

// Selection returns the selected keys in selection order. Keys may refer
// to records outside the current page.
func (c *Controller[T, K]) Selection() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.selection)
}

// SelectedRecords returns the records of the current page that are selected.
func (c *Controller[T, K]) SelectedRecords() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	var records []T
	for _, item := range c.items {
		if _, ok := c.selected[c.key(item)]; ok {
			records = append(records, item)
		}
	}
	return records
}

// Key returns the identity of record.
func (c *Controller[T, K]) Key(record T) K {
	return c.key(record)
}

// State returns a copy of the current state.
func (c *Controller[T, K]) State() State[T, K] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return State[T, K]{
		Request:    copyRequest(c.req),
		Items:      slices.Clone(c.items),
		TotalCount: c.totalCount,
		TotalPages: c.totalPages,
		Loading:    c.loading,
		Loaded:     c.loaded,
		Err:        c.err,
		Selection:  slices.Clone(c.selection),
	}
}

func (c *Controller[T, K]) add(k K) {
	if _, ok := c.selected[k]; ok {
		return
	}
	c.selected[k] = struct{}{}
	c.selection = append(c.selection, k)
}

func (c *Controller[T, K]) remove(k K) {
	if _, ok := c.selected[k]; !ok {
		return
	}
	delete(c.selected, k)
	c.selection = slices.DeleteFunc(c.selection, func(v K) bool { return v == k })
}

func copyRequest(r pagination.PageRequest) pagination.PageRequest {
	out := r
	out.Sort = slices.Clone(r.Sort)
	if r.Search != nil {
		s := *r.Search
		out.Search = &s
	}
	return out
}
