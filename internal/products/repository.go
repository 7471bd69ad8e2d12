package products

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/storefront/pkg/notify"
	"github.com/JaimeStill/storefront/pkg/pagination"
	"github.com/JaimeStill/storefront/pkg/query"
	"github.com/JaimeStill/storefront/pkg/repository"
)

const resource = "products"

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
		logger:     logger.With("system", "product"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Product], error) {
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
		return nil, fmt.Errorf("count products: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.PageIndex, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanProduct)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.PageIndex, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Product, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanProduct)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Product, error) {
	if err := cmd.normalize(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO products (name, sku, description, price_cents, stock, status, image_url, brand_id, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + columns

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Product, error) {
		return repository.QueryOne(ctx, tx, q, cmd.args(), scanProduct)
	})
	if err != nil {
		return nil, mapError(err)
	}

	r.logger.Info("product created", "id", p.ID, "sku", p.SKU)
	notify.Announce(ctx, r.events, r.logger, notify.KindCreated, resource, fmt.Sprintf("Product %s created", p.SKU))
	return &p, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Product, error) {
	if err := cmd.normalize(); err != nil {
		return nil, err
	}

	q := `
		UPDATE products
		SET name = $1, sku = $2, description = $3, price_cents = $4, stock = $5,
		    status = $6, image_url = $7, brand_id = $8, category_id = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING ` + columns

	args := append((*CreateCommand)(&cmd).args(), id)

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Product, error) {
		return repository.QueryOne(ctx, tx, q, args, scanProduct)
	})
	if err != nil {
		return nil, mapError(err)
	}

	r.logger.Info("product updated", "id", p.ID, "sku", p.SKU)
	notify.Announce(ctx, r.events, r.logger, notify.KindUpdated, resource, fmt.Sprintf("Product %s updated", p.SKU))
	return &p, nil
}

func (r *repo) Delete(ctx context.Context, ids ...uuid.UUID) (int, error) {
	n, err := repository.DeleteMany(ctx, r.db, projection, "ID", ids)
	if err != nil {
		return 0, mapError(err)
	}

	r.logger.Info("products deleted", "count", n)
	notify.Announce(ctx, r.events, r.logger, notify.KindDeleted, resource, fmt.Sprintf("%d product(s) deleted", n))
	return n, nil
}

func mapError(err error) error {
	if repository.IsForeignKeyViolation(err) {
		return ErrReference
	}
	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}
