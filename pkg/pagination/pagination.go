package pagination

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/JaimeStill/storefront/pkg/query"
)

// Query parameter names understood by collection endpoints.
const (
	ParamPageIndex  = "pageIndex"
	ParamPageSize   = "pageSize"
	ParamTextSearch = "textSearch"
	ParamSort       = "sort"
)

// PageRequest represents a request for one zero-based page of a collection
// with optional free-text search and sorting.
type PageRequest struct {
	PageIndex int               `json:"pageIndex"`
	PageSize  int               `json:"pageSize"`
	Search    *string           `json:"textSearch,omitempty"`
	Sort      []query.SortField `json:"sort,omitempty"`
}

// Normalize adjusts the request to ensure valid pagination values based on the config.
func (r *PageRequest) Normalize(cfg Config) {
	if r.PageIndex < 0 {
		r.PageIndex = 0
	}
	if r.PageSize < 1 {
		r.PageSize = cfg.DefaultPageSize
	}
	if r.PageSize > cfg.MaxPageSize {
		r.PageSize = cfg.MaxPageSize
	}
	if r.Search != nil && strings.TrimSpace(*r.Search) == "" {
		r.Search = nil
	}
}

// Offset calculates the number of records to skip based on page index and
// page size. It saturates instead of overflowing for very large page indexes.
func (r *PageRequest) Offset() int {
	return query.Offset(r.PageIndex, r.PageSize)
}

// Values encodes the request as URL query values. It is the inverse of
// PageRequestFromQuery.
func (r PageRequest) Values() url.Values {
	values := url.Values{}
	values.Set(ParamPageIndex, strconv.Itoa(r.PageIndex))
	values.Set(ParamPageSize, strconv.Itoa(r.PageSize))
	if r.Search != nil && *r.Search != "" {
		values.Set(ParamTextSearch, *r.Search)
	}
	if len(r.Sort) > 0 {
		values.Set(ParamSort, query.FormatSortFields(r.Sort))
	}
	return values
}

// PageRequestFromQuery parses pagination parameters from URL query values.
// Supported parameters: pageIndex, pageSize, textSearch, sort (comma-separated, "-" prefix for desc).
// The result is normalized according to the provided config.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	pageIndex, _ := strconv.Atoi(values.Get(ParamPageIndex))
	pageSize, _ := strconv.Atoi(values.Get(ParamPageSize))

	var search *string
	if s := strings.TrimSpace(values.Get(ParamTextSearch)); s != "" {
		search = &s
	}

	sort := query.ParseSortFields(values.Get(ParamSort))

	req := PageRequest{
		PageIndex: pageIndex,
		PageSize:  pageSize,
		Search:    search,
		Sort:      sort,
	}

	req.Normalize(cfg)
	return req
}

// PageResult holds a page of data along with pagination metadata.
type PageResult[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	PageIndex  int `json:"pageIndex"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// NewPageResult creates a PageResult with calculated total pages.
func NewPageResult[T any](items []T, total, pageIndex, pageSize int) PageResult[T] {
	if items == nil {
		items = []T{}
	}

	return PageResult[T]{
		Items:      items,
		TotalCount: total,
		PageIndex:  pageIndex,
		PageSize:   pageSize,
		TotalPages: TotalPages(total, pageSize),
	}
}

// TotalPages returns ceil(total/pageSize). An empty collection has zero pages.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 || total < 1 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
