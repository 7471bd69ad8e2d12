package categories

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

const resource = "categories"

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
		logger:     logger.With("system", "category"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Category], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, searchFields...)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.PageIndex, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanCategory)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.PageIndex, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Category, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCategory)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Category, error) {
	if err := cmd.normalize(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO categories (name, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id, name, slug, description, created_at, updated_at`

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Category, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.Name, cmd.Slug, cmd.Description}, scanCategory)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("category created", "id", c.ID, "slug", c.Slug)
	notify.Announce(ctx, r.events, r.logger, notify.KindCreated, resource, fmt.Sprintf("Category %q created", c.Name))
	return &c, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Category, error) {
	if err := cmd.normalize(); err != nil {
		return nil, err
	}

	q := `
		UPDATE categories
		SET name = $1, slug = $2, description = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id, name, slug, description, created_at, updated_at`

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Category, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.Name, cmd.Slug, cmd.Description, id}, scanCategory)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("category updated", "id", c.ID, "slug", c.Slug)
	notify.Announce(ctx, r.events, r.logger, notify.KindUpdated, resource, fmt.Sprintf("Category %q updated", c.Name))
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, ids ...uuid.UUID) (int, error) {
	n, err := repository.DeleteMany(ctx, r.db, projection, "ID", ids)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return 0, ErrInUse
		}
		return 0, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("categories deleted", "count", n)
	notify.Announce(ctx, r.events, r.logger, notify.KindDeleted, resource, fmt.Sprintf("%d category(ies) deleted", n))
	return n, nil
}
