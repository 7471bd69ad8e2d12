package query_test

import (
	"reflect"
	"testing"

	"github.com/JaimeStill/storefront/pkg/query"
)

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty", "", nil},
		{"whitespace", "   ", nil},
		{"single", "name", []query.SortField{{Field: "name"}}},
		{"descending", "-price", []query.SortField{{Field: "price", Descending: true}}},
		{"plus prefix", "+price", []query.SortField{{Field: "price"}}},
		{
			"multiple with spaces",
			"name, -createdAt",
			[]query.SortField{{Field: "name"}, {Field: "createdAt", Descending: true}},
		},
		{"skips blanks", "name,,-,", []query.SortField{{Field: "name"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSortFields(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatSortFields_RoundTrip(t *testing.T) {
	input := "name,-price,createdAt"
	got := query.FormatSortFields(query.ParseSortFields(input))
	if got != input {
		t.Errorf("FormatSortFields() = %q, want %q", got, input)
	}
}

func TestProjectionMap_Has(t *testing.T) {
	pm := newTestProjection()

	tests := []struct {
		field string
		want  bool
	}{
		{"Name", true},
		{"name", true},
		{"NAME", true},
		{"stock", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := pm.Has(tt.field); got != tt.want {
			t.Errorf("Has(%q) = %v, want %v", tt.field, got, tt.want)
		}
	}
}

func TestProjectionMap_Column(t *testing.T) {
	pm := newTestProjection()

	if got := pm.Column("price"); got != "p.price" {
		t.Errorf("Column(price) = %q, want p.price", got)
	}
	if got := pm.Column("other"); got != "other" {
		t.Errorf("Column(other) = %q, want passthrough", got)
	}
	if got := pm.Table(); got != "public.products p" {
		t.Errorf("Table() = %q", got)
	}
}
