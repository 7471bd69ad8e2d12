// Package toolbar applies create, edit and delete actions to the records
// of a table controller and reports the outcome as notices.
package toolbar

import (
	"context"
	"errors"
	"fmt"

	"github.com/JaimeStill/storefront/internal/table"
	"github.com/JaimeStill/storefront/pkg/client"
)

var (
	ErrSelectOne  = errors.New("select exactly one record")
	ErrSelectNone = errors.New("select at least one record")
)

// Toolbar is bound to one controller and one remote collection.
type Toolbar[T any, K comparable, C any, U any] struct {
	table    *table.Controller[T, K]
	mutator  client.Mutator[T, K, C, U]
	notifier Notifier
	noun     string
}

// New creates a toolbar. noun names a record in notices, e.g. "product".
// A nil notifier discards notices.
func New[T any, K comparable, C any, U any](
	ctrl *table.Controller[T, K],
	mutator client.Mutator[T, K, C, U],
	notifier Notifier,
	noun string,
) *Toolbar[T, K, C, U] {
	if notifier == nil {
		notifier = NotifierFunc(func(Notice) {})
	}
	return &Toolbar[T, K, C, U]{
		table:    ctrl,
		mutator:  mutator,
		notifier: notifier,
		noun:     noun,
	}
}

// Create creates a record and reloads the table.
func (tb *Toolbar[T, K, C, U]) Create(ctx context.Context, cmd C) (T, error) {
	rec, err := tb.mutator.Create(ctx, cmd)
	if err != nil {
		return rec, tb.fail(err)
	}

	tb.notifier.Notify(Notice{Level: LevelInfo, Message: fmt.Sprintf("%s created", tb.noun)})
	tb.reload(ctx)
	return rec, nil
}

// Edit updates the single selected record and reloads the table.
func (tb *Toolbar[T, K, C, U]) Edit(ctx context.Context, cmd U) (T, error) {
	var zero T

	id, err := tb.one()
	if err != nil {
		return zero, tb.fail(err)
	}

	rec, err := tb.mutator.Update(ctx, id, cmd)
	if err != nil {
		return zero, tb.fail(err)
	}

	tb.notifier.Notify(Notice{Level: LevelInfo, Message: fmt.Sprintf("%s updated", tb.noun)})
	tb.reload(ctx)
	return rec, nil
}

// Delete removes every selected record. On success the selection is
// cleared before the table reloads; on failure it is kept.
func (tb *Toolbar[T, K, C, U]) Delete(ctx context.Context) (int, error) {
	ids := tb.table.Selection()
	if len(ids) == 0 {
		return 0, tb.fail(ErrSelectNone)
	}

	n, err := tb.mutator.Delete(ctx, ids...)
	if err != nil {
		return 0, tb.fail(err)
	}

	tb.table.ClearSelection()
	tb.notifier.Notify(Notice{Level: LevelInfo, Message: fmt.Sprintf("%d %s(s) deleted", n, tb.noun)})
	tb.reload(ctx)
	return n, nil
}

// Act runs fn against the single selected record, such as an order status
// change, then reloads the table.
func (tb *Toolbar[T, K, C, U]) Act(ctx context.Context, label string, fn func(context.Context, K) error) error {
	id, err := tb.one()
	if err != nil {
		return tb.fail(err)
	}

	if err := fn(ctx, id); err != nil {
		return tb.fail(err)
	}

	tb.notifier.Notify(Notice{Level: LevelInfo, Message: fmt.Sprintf("%s %s", tb.noun, label)})
	tb.reload(ctx)
	return nil
}

func (tb *Toolbar[T, K, C, U]) one() (K, error) {
	var zero K
	ids := tb.table.Selection()
	if len(ids) != 1 {
		return zero, ErrSelectOne
	}
	return ids[0], nil
}

func (tb *Toolbar[T, K, C, U]) fail(err error) error {
	tb.notifier.Notify(NoticeFor(err))
	return err
}

// reload failures surface through the controller state, not as notices.
func (tb *Toolbar[T, K, C, U]) reload(ctx context.Context) {
	_ = tb.table.Reload(ctx)
}
