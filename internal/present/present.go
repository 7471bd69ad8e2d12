// Package present turns records into the header and row strings of a
// terminal table.
package present

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/JaimeStill/storefront/pkg/query"
)

// Column describes one table column. SortKey is the server field the column
// sorts by; a column without one is not sortable.
type Column[T any] struct {
	Title   string
	SortKey string
	Width   int
	Render  func(T) string
}

func (c Column[T]) Sortable() bool {
	return c.SortKey != ""
}

// Headers returns the column titles. The column matching the first sort
// field is marked with its direction.
func Headers[T any](cols []Column[T], sort ...query.SortField) []string {
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Title
		if len(sort) > 0 && c.Sortable() && sort[0].Field == c.SortKey {
			if sort[0].Descending {
				headers[i] += " ▼"
			} else {
				headers[i] += " ▲"
			}
		}
	}
	return headers
}

// Rows renders items column by column. Cells are truncated to the column
// width when one is set.
func Rows[T any](cols []Column[T], items []T) [][]string {
	rows := make([][]string, len(items))
	for i, item := range items {
		row := make([]string, len(cols))
		for j, c := range cols {
			cell := c.Render(item)
			if c.Width > 0 {
				cell = Truncate(cell, c.Width)
			}
			row[j] = cell
		}
		rows[i] = row
	}
	return rows
}

// TableColumns converts columns for a bubbles table.
func TableColumns[T any](cols []Column[T], sort ...query.SortField) []table.Column {
	headers := Headers(cols, sort...)
	out := make([]table.Column, len(cols))
	for i, c := range cols {
		width := c.Width
		if width <= 0 {
			width = max(lipgloss.Width(headers[i]), 8)
		}
		out[i] = table.Column{Title: headers[i], Width: width}
	}
	return out
}

// TableRows converts rendered rows for a bubbles table.
func TableRows[T any](cols []Column[T], items []T) []table.Row {
	rows := Rows(cols, items)
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		out[i] = table.Row(r)
	}
	return out
}

// SortKeys lists the sortable fields in column order.
func SortKeys[T any](cols []Column[T]) []string {
	var keys []string
	for _, c := range cols {
		if c.Sortable() {
			keys = append(keys, c.SortKey)
		}
	}
	return keys
}

// NextSort cycles through the sortable columns: each key ascending, then
// descending, then the next key. An empty result means server default.
func NextSort[T any](cols []Column[T], current []query.SortField) []query.SortField {
	keys := SortKeys(cols)
	if len(keys) == 0 {
		return nil
	}
	if len(current) == 0 {
		return []query.SortField{{Field: keys[0]}}
	}

	cur := current[0]
	for i, k := range keys {
		if k != cur.Field {
			continue
		}
		if !cur.Descending {
			return []query.SortField{{Field: k, Descending: true}}
		}
		if i+1 < len(keys) {
			return []query.SortField{{Field: keys[i+1]}}
		}
		return nil
	}
	return []query.SortField{{Field: keys[0]}}
}

// Money formats an amount in cents as dollars.
func Money(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	whole := fmt.Sprintf("%d", cents/100)
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("%s$%s.%02d", sign, b.String(), cents%100)
}

var ErrMoney = errors.New("invalid amount")

// ParseMoney reads a dollar amount such as "19.99", "$1,250" or "0.5" into
// cents.
func ParseMoney(s string) (int64, error) {
	raw := strings.TrimSpace(s)
	neg := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "$")
	raw = strings.ReplaceAll(raw, ",", "")

	whole, frac, hasFrac := strings.Cut(raw, ".")
	if whole == "" && !hasFrac {
		return 0, fmt.Errorf("%w: %q", ErrMoney, s)
	}
	if len(frac) > 2 || (hasFrac && frac == "") {
		return 0, fmt.Errorf("%w: %q", ErrMoney, s)
	}
	if whole == "" {
		whole = "0"
	}
	for len(frac) < 2 {
		frac += "0"
	}

	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || dollars < 0 {
		return 0, fmt.Errorf("%w: %q", ErrMoney, s)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil || cents < 0 {
		return 0, fmt.Errorf("%w: %q", ErrMoney, s)
	}

	total := dollars*100 + cents
	if neg {
		total = -total
	}
	return total, nil
}

var (
	badgeBase = lipgloss.NewStyle().Padding(0, 1).Bold(true)

	badgeColors = map[string]lipgloss.Color{
		"active":    lipgloss.Color("#50FA7B"),
		"paid":      lipgloss.Color("#50FA7B"),
		"delivered": lipgloss.Color("#50FA7B"),
		"published": lipgloss.Color("#50FA7B"),
		"approved":  lipgloss.Color("#50FA7B"),
		"pending":   lipgloss.Color("#F1FA8C"),
		"draft":     lipgloss.Color("#F1FA8C"),
		"shipped":   lipgloss.Color("#8BE9FD"),
		"cancelled": lipgloss.Color("#FF5555"),
		"archived":  lipgloss.Color("#6272A4"),
	}
)

// Badge renders a status label, coloured when the status is known.
func Badge(status string) string {
	label := strings.ToLower(strings.TrimSpace(status))
	if label == "" {
		return ""
	}
	style := badgeBase
	if c, ok := badgeColors[label]; ok {
		style = style.Foreground(c)
	}
	return style.Render(label)
}

// Truncate shortens s to at most limit runes, ending with an ellipsis.
func Truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}

// Date formats t as a calendar day in UTC. The zero time renders as "-".
func Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02")
}

// Optional renders a pointer value or "-" when nil.
func Optional[T any](v *T, render func(T) string) string {
	if v == nil {
		return "-"
	}
	return render(*v)
}

// ImageMarker is "▣" when the record has an image and "·" otherwise.
func ImageMarker(url string) string {
	if strings.TrimSpace(url) == "" {
		return "·"
	}
	return "▣"
}

// Hint lists the keys of the actions a row currently accepts, e.g.
// Hint("a activate", "", "x archive") renders "a activate · x archive".
func Hint(actions ...string) string {
	var parts []string
	for _, a := range actions {
		if a != "" {
			parts = append(parts, a)
		}
	}
	return strings.Join(parts, " · ")
}
