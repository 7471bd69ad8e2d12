package query

import "strings"

// SortField is a single ordering term. Field is a view name from a ProjectionMap.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// ParseSortFields parses "name,-createdAt" into sort fields. A leading "-"
// marks a descending field and a leading "+" is ignored. Returns nil for empty input.
func ParseSortFields(s string) []SortField {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var fields []SortField
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		field := SortField{}
		switch part[0] {
		case '-':
			field.Descending = true
			part = part[1:]
		case '+':
			part = part[1:]
		}

		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		field.Field = part
		fields = append(fields, field)
	}
	return fields
}

// FormatSortFields is the inverse of ParseSortFields.
func FormatSortFields(fields []SortField) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Field == "" {
			continue
		}
		if f.Descending {
			parts = append(parts, "-"+f.Field)
		} else {
			parts = append(parts, f.Field)
		}
	}
	return strings.Join(parts, ",")
}
