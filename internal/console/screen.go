package console

import (
	"context"
	"errors"
	"fmt"
	"strings"

	teatable "github.com/charmbracelet/bubbles/table"
	"github.com/google/uuid"

	"github.com/JaimeStill/storefront/internal/present"
	"github.com/JaimeStill/storefront/internal/table"
	"github.com/JaimeStill/storefront/internal/toolbar"
	"github.com/JaimeStill/storefront/pkg/query"
)

var (
	errUnsupported = errors.New("not available for this resource")
	errNotOnPage   = errors.New("the selected record is not on this page")
)

// status is the footer summary of a screen.
type status struct {
	PageIndex  int
	TotalPages int
	TotalCount int
	Selected   int
	Loading    bool
	Loaded     bool
	Err        error
	Search     string
	Sort       []query.SortField
}

// action is a resource-specific command bound to a key, applied to the
// single selected record.
type action struct {
	Key   string
	Label string
	Run   func(ctx context.Context) error
}

// screen is one resource tab. Every method is safe to call from a tea.Cmd.
type screen interface {
	Name() string
	Columns() []teatable.Column
	Rows() []teatable.Row
	Status() status

	Reload(ctx context.Context) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	Search(ctx context.Context, term string) error
	CycleSort(ctx context.Context) error

	Toggle(row int) bool
	ClearSelection()

	Delete(ctx context.Context) (int, error)
	CanCreate() bool
	Create(ctx context.Context, input string) error
	EditValue() (string, error)
	Edit(ctx context.Context, input string) error
	Actions() []action
}

// resource adapts a table controller, its toolbar and presenter columns to
// the screen interface.
type resource[T any, C any, U any] struct {
	name     string
	ctrl     *table.Controller[T, uuid.UUID]
	tb       *toolbar.Toolbar[T, uuid.UUID, C, U]
	cols     []present.Column[T]
	notifier toolbar.Notifier

	// create builds a create command from prompt input; nil disables "new".
	create func(input string) (C, error)
	// editValue and edit drive the single-field edit prompt; nil disables "edit".
	editValue func(T) string
	edit      func(rec T, input string) (U, error)
	actions   func(r *resource[T, C, U]) []action
}

const selectMark = "●"

func (r *resource[T, C, U]) Name() string {
	return r.name
}

func (r *resource[T, C, U]) Columns() []teatable.Column {
	cols := present.TableColumns(r.cols, r.ctrl.State().Request.Sort...)
	return append([]teatable.Column{{Title: " ", Width: 1}}, cols...)
}

func (r *resource[T, C, U]) Rows() []teatable.Row {
	st := r.ctrl.State()
	rows := present.TableRows(r.cols, st.Items)
	for i, item := range st.Items {
		mark := " "
		if r.ctrl.Selected(r.ctrl.Key(item)) {
			mark = selectMark
		}
		rows[i] = append(teatable.Row{mark}, rows[i]...)
	}
	return rows
}

func (r *resource[T, C, U]) Status() status {
	st := r.ctrl.State()
	s := status{
		PageIndex:  st.Request.PageIndex,
		TotalPages: st.TotalPages,
		TotalCount: st.TotalCount,
		Selected:   len(st.Selection),
		Loading:    st.Loading,
		Loaded:     st.Loaded,
		Err:        st.Err,
		Sort:       st.Request.Sort,
	}
	if st.Request.Search != nil {
		s.Search = *st.Request.Search
	}
	return s
}

func (r *resource[T, C, U]) Reload(ctx context.Context) error {
	return r.ctrl.Reload(ctx)
}

func (r *resource[T, C, U]) NextPage(ctx context.Context) error {
	return r.ctrl.NextPage(ctx)
}

func (r *resource[T, C, U]) PrevPage(ctx context.Context) error {
	return r.ctrl.PrevPage(ctx)
}

func (r *resource[T, C, U]) Search(ctx context.Context, term string) error {
	return r.ctrl.Search(ctx, term)
}

func (r *resource[T, C, U]) CycleSort(ctx context.Context) error {
	next := present.NextSort(r.cols, r.ctrl.State().Request.Sort)
	return r.ctrl.Sort(ctx, next...)
}

// Toggle flips the selection of the record at row on the current page.
func (r *resource[T, C, U]) Toggle(row int) bool {
	items := r.ctrl.State().Items
	if row < 0 || row >= len(items) {
		return false
	}
	return r.ctrl.Toggle(r.ctrl.Key(items[row]))
}

func (r *resource[T, C, U]) ClearSelection() {
	r.ctrl.ClearSelection()
}

func (r *resource[T, C, U]) Delete(ctx context.Context) (int, error) {
	return r.tb.Delete(ctx)
}

func (r *resource[T, C, U]) CanCreate() bool {
	return r.create != nil
}

func (r *resource[T, C, U]) Create(ctx context.Context, input string) error {
	if r.create == nil {
		return r.fail(errUnsupported)
	}
	cmd, err := r.create(strings.TrimSpace(input))
	if err != nil {
		return r.fail(err)
	}
	_, err = r.tb.Create(ctx, cmd)
	return err
}

// EditValue returns the current value of the editable field of the single
// selected record.
func (r *resource[T, C, U]) EditValue() (string, error) {
	if r.edit == nil {
		return "", r.fail(errUnsupported)
	}
	rec, err := r.selectedRecord()
	if err != nil {
		return "", r.fail(err)
	}
	return r.editValue(rec), nil
}

func (r *resource[T, C, U]) Edit(ctx context.Context, input string) error {
	if r.edit == nil {
		return r.fail(errUnsupported)
	}
	rec, err := r.selectedRecord()
	if err != nil {
		return r.fail(err)
	}
	cmd, err := r.edit(rec, strings.TrimSpace(input))
	if err != nil {
		return r.fail(err)
	}
	_, err = r.tb.Edit(ctx, cmd)
	return err
}

func (r *resource[T, C, U]) Actions() []action {
	if r.actions == nil {
		return nil
	}
	return r.actions(r)
}

func (r *resource[T, C, U]) selectedRecord() (T, error) {
	var zero T
	if len(r.ctrl.Selection()) != 1 {
		return zero, toolbar.ErrSelectOne
	}
	recs := r.ctrl.SelectedRecords()
	if len(recs) != 1 {
		return zero, errNotOnPage
	}
	return recs[0], nil
}

// fail reports errors raised before a request reaches the toolbar.
func (r *resource[T, C, U]) fail(err error) error {
	n := toolbar.NoticeFor(err)
	if n.Kind == toolbar.KindTransport {
		n.Kind = toolbar.KindValidation
	}
	r.notifier.Notify(n)
	return err
}

// act wraps fn as a toolbar action on the selected record.
func (r *resource[T, C, U]) act(key, label string, fn func(ctx context.Context, rec T) error) action {
	return action{
		Key:   key,
		Label: label,
		Run: func(ctx context.Context) error {
			rec, err := r.selectedRecord()
			if err != nil {
				return r.fail(err)
			}
			return r.tb.Act(ctx, label, func(ctx context.Context, _ uuid.UUID) error {
				return fn(ctx, rec)
			})
		},
	}
}

func (s status) pageLabel() string {
	pages := max(s.TotalPages, 1)
	return fmt.Sprintf("page %d/%d · %d total", s.PageIndex+1, pages, s.TotalCount)
}
