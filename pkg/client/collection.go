package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"

	"github.com/google/uuid"

	"github.com/JaimeStill/storefront/pkg/decode"
	"github.com/JaimeStill/storefront/pkg/pagination"
)

// Provider fetches one page of a remote collection.
type Provider[T any] interface {
	List(ctx context.Context, req pagination.PageRequest) (pagination.PageResult[T], error)
}

// Mutator creates, updates, and deletes records of a remote collection.
// Delete returns the number of deleted records.
type Mutator[T any, K comparable, C any, U any] interface {
	Create(ctx context.Context, cmd C) (T, error)
	Update(ctx context.Context, id K, cmd U) (T, error)
	Delete(ctx context.Context, ids ...K) (int, error)
}

// Collection binds a resource path such as "products" to its record and
// command types. It is the only list provider implementation; domains differ
// only by path and types.
type Collection[T any, C any, U any] struct {
	client *Client
	path   string
}

var (
	_ Provider[struct{}]                                 = (*Collection[struct{}, struct{}, struct{}])(nil)
	_ Mutator[struct{}, uuid.UUID, struct{}, struct{}] = (*Collection[struct{}, struct{}, struct{}])(nil)
)

// NewCollection creates a Collection for the resource at path.
func NewCollection[T any, C any, U any](c *Client, path string) *Collection[T, C, U] {
	return &Collection[T, C, U]{client: c, path: path}
}

// Path returns the resource path.
func (col *Collection[T, C, U]) Path() string {
	return col.path
}

type page[T any] struct {
	Items      []T  `json:"items"`
	TotalCount *int `json:"totalCount"`
	PageIndex  *int `json:"pageIndex"`
	PageSize   *int `json:"pageSize"`
	TotalPages int  `json:"totalPages"`
}

// List fetches the page described by req and validates it against the page contract.
func (col *Collection[T, C, U]) List(ctx context.Context, req pagination.PageRequest) (pagination.PageResult[T], error) {
	data, err := col.client.do(ctx, http.MethodGet, col.path, req.Values(), nil)
	if err != nil {
		return pagination.PageResult[T]{}, err
	}
	if data == nil {
		return pagination.PageResult[T]{}, invalid("list %s: missing data", col.path)
	}

	p, err := decode.Raw[page[T]](data)
	if err != nil {
		return pagination.PageResult[T]{}, invalid("list %s: %v", col.path, err)
	}

	if err := validatePage(p, req); err != nil {
		return pagination.PageResult[T]{}, invalid("list %s: %v", col.path, err)
	}

	return pagination.NewPageResult(p.Items, *p.TotalCount, *p.PageIndex, *p.PageSize), nil
}

// Find fetches a single record.
func (col *Collection[T, C, U]) Find(ctx context.Context, id uuid.UUID) (T, error) {
	return col.record(ctx, http.MethodGet, col.path+"/"+id.String(), nil)
}

// Create posts cmd and returns the created record.
func (col *Collection[T, C, U]) Create(ctx context.Context, cmd C) (T, error) {
	return col.record(ctx, http.MethodPost, col.path, cmd)
}

// Update puts cmd to the record and returns the updated record.
func (col *Collection[T, C, U]) Update(ctx context.Context, id uuid.UUID, cmd U) (T, error) {
	return col.record(ctx, http.MethodPut, col.path+"/"+id.String(), cmd)
}

type bulkDelete struct {
	IDs []uuid.UUID `json:"ids"`
}

type bulkDeleteResult struct {
	Deleted *int `json:"deleted"`
}

// Delete removes the given records in one request. A single id targets the
// record path; several ids go through the bulk endpoint, which deletes all or
// nothing. Duplicate ids are sent once.
func (col *Collection[T, C, U]) Delete(ctx context.Context, ids ...uuid.UUID) (int, error) {
	unique := slices.Clone(ids)
	slices.SortFunc(unique, func(a, b uuid.UUID) int { return slices.Compare(a[:], b[:]) })
	unique = slices.Compact(unique)

	if len(unique) == 0 {
		return 0, nil
	}

	var data json.RawMessage
	var err error
	if len(unique) == 1 {
		data, err = col.client.do(ctx, http.MethodDelete, col.path+"/"+unique[0].String(), nil, nil)
	} else {
		data, err = col.client.do(ctx, http.MethodDelete, col.path, nil, bulkDelete{IDs: unique})
	}
	if err != nil {
		return 0, err
	}
	if data == nil {
		return 0, invalid("delete %s: missing data", col.path)
	}

	result, err := decode.Raw[bulkDeleteResult](data)
	if err != nil {
		return 0, invalid("delete %s: %v", col.path, err)
	}
	if result.Deleted == nil || *result.Deleted != len(unique) {
		return 0, invalid("delete %s: deleted count does not match request", col.path)
	}
	return *result.Deleted, nil
}

func (col *Collection[T, C, U]) record(ctx context.Context, method, path string, body any) (T, error) {
	var zero T

	data, err := col.client.do(ctx, method, path, nil, body)
	if err != nil {
		return zero, err
	}
	if data == nil {
		return zero, invalid("%s %s: missing data", method, path)
	}

	rec, err := decode.Raw[T](data)
	if err != nil {
		return zero, invalid("%s %s: %v", method, path, err)
	}
	return rec, nil
}

func validatePage[T any](p page[T], req pagination.PageRequest) error {
	switch {
	case p.Items == nil:
		return fmt.Errorf("missing items")
	case p.TotalCount == nil || *p.TotalCount < 0:
		return fmt.Errorf("missing or negative totalCount")
	case p.PageIndex == nil || p.PageSize == nil:
		return fmt.Errorf("missing pageIndex or pageSize")
	case *p.PageSize < 1:
		return fmt.Errorf("non-positive pageSize")
	case *p.PageIndex != req.PageIndex:
		return fmt.Errorf("pageIndex %d does not match requested %d", *p.PageIndex, req.PageIndex)
	case len(p.Items) > *p.PageSize:
		return fmt.Errorf("%d items exceed pageSize %d", len(p.Items), *p.PageSize)
	case len(p.Items) > *p.TotalCount:
		return fmt.Errorf("%d items exceed totalCount %d", len(p.Items), *p.TotalCount)
	}
	return nil
}

// Act sends body to a sub-resource of one record, such as
// "orders/{id}/status", and returns the updated record.
func (col *Collection[T, C, U]) Act(ctx context.Context, method string, id uuid.UUID, action string, body any) (T, error) {
	return col.record(ctx, method, col.path+"/"+id.String()+"/"+action, body)
}
