package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/storefront/pkg/notify"
	"github.com/JaimeStill/storefront/pkg/pagination"
	"github.com/JaimeStill/storefront/pkg/query"
	"github.com/JaimeStill/storefront/pkg/repository"
)

const resource = "orders"

type repo struct {
	db         *sql.DB
	events     notify.Publisher
	logger     *slog.Logger
	pagination pagination.Config
}

func New(db *sql.DB, events notify.Publisher, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		events:     events,
		logger:     logger.With("system", "order"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Order], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, searchFields...)

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.PageIndex, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanOrder)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.PageIndex, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Order, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	o, err := repository.QueryOne(ctx, r.db, q, args, scanOrder)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	o.Items, err = items(ctx, r.db, o.ID)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Order, error) {
	if err := cmd.normalize(); err != nil {
		return nil, err
	}

	insertOrder := `
		INSERT INTO orders (number, customer_name, customer_email)
		VALUES ($1, $2, $3)
		RETURNING id`

	insertItem := `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price_cents)
		SELECT $1, id, $3, price_cents FROM products
		WHERE id = $2 AND status <> 'archived'`

	total := `
		UPDATE orders
		SET total_cents = (
		    SELECT COALESCE(SUM(quantity * unit_price_cents), 0)
		    FROM order_items WHERE order_id = $1
		)
		WHERE id = $1
		RETURNING ` + columns

	var (
		o   Order
		err error
	)
	for range numberAttempts {
		number := NewNumber(time.Now())
		o, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Order, error) {
			var id uuid.UUID
			if err := tx.QueryRowContext(ctx, insertOrder, number, cmd.CustomerName, cmd.CustomerEmail).Scan(&id); err != nil {
				return Order{}, err
			}

			for _, item := range cmd.Items {
				err := repository.ExecExpectOne(ctx, tx, insertItem, id, item.ProductID, item.Quantity)
				if errors.Is(err, sql.ErrNoRows) {
					return Order{}, fmt.Errorf("%w: unknown or archived product %s", ErrInvalid, item.ProductID)
				}
				if err != nil {
					return Order{}, err
				}
			}

			o, err := repository.QueryOne(ctx, tx, total, []any{id}, scanOrder)
			if err != nil {
				return Order{}, err
			}

			o.Items, err = items(ctx, tx, id)
			return o, err
		})
		if !errors.Is(repository.MapError(err, ErrNotFound, ErrDuplicate), ErrDuplicate) {
			break
		}
		r.logger.Warn("order number collision", "number", number)
	}
	if err != nil {
		if errors.Is(err, ErrInvalid) {
			return nil, err
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("order created", "id", o.ID, "number", o.Number, "total_cents", o.TotalCents)
	notify.Announce(ctx, r.events, r.logger, notify.KindCreated, resource, fmt.Sprintf("Order %s placed", o.Number))
	return &o, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Order, error) {
	if err := cmd.normalize(); err != nil {
		return nil, err
	}

	q := `
		UPDATE orders
		SET customer_name = $1, customer_email = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + columns

	o, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Order, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.CustomerName, cmd.CustomerEmail, id}, scanOrder)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("order updated", "id", o.ID, "number", o.Number)
	notify.Announce(ctx, r.events, r.logger, notify.KindUpdated, resource, fmt.Sprintf("Order %s updated", o.Number))
	return &o, nil
}

func (r *repo) Transition(ctx context.Context, id uuid.UUID, status Status) (*Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalid, status)
	}

	lock := `SELECT status FROM orders WHERE id = $1 FOR UPDATE`

	q := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + columns

	o, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Order, error) {
		var current Status
		if err := tx.QueryRowContext(ctx, lock, id).Scan(&current); err != nil {
			return Order{}, err
		}
		if !current.CanTransition(status) {
			return Order{}, fmt.Errorf("%w: %s to %s", ErrTransition, current, status)
		}
		return repository.QueryOne(ctx, tx, q, []any{string(status), id}, scanOrder)
	})
	if err != nil {
		if errors.Is(err, ErrTransition) {
			return nil, err
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("order status changed", "id", o.ID, "number", o.Number, "status", o.Status)
	notify.Announce(ctx, r.events, r.logger, notify.KindUpdated, resource, fmt.Sprintf("Order %s is now %s", o.Number, o.Status))
	return &o, nil
}

func (r *repo) Delete(ctx context.Context, ids ...uuid.UUID) (int, error) {
	n, err := repository.DeleteMany(ctx, r.db, projection, "ID", ids)
	if err != nil {
		return 0, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("orders deleted", "count", n)
	notify.Announce(ctx, r.events, r.logger, notify.KindDeleted, resource, fmt.Sprintf("%d order(s) deleted", n))
	return n, nil
}

func items(ctx context.Context, q repository.Querier, orderID uuid.UUID) ([]Item, error) {
	const itemsSQL = `
		SELECT product_id, quantity, unit_price_cents
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_id`

	result, err := repository.QueryMany(ctx, q, itemsSQL, []any{orderID}, scanItem)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	return result, nil
}
