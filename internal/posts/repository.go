package posts

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

const resource = "posts"

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
		logger:     logger.With("system", "post"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Post], error) {
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
		return nil, fmt.Errorf("count posts: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.PageIndex, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanPost)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.PageIndex, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Post, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPost)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Post, error) {
	if err := cmd.normalize(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO posts (title, slug, excerpt, body, published, published_at)
		VALUES ($1, $2, $3, $4, $5, CASE WHEN $5 THEN NOW() END)
		RETURNING ` + columns

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Post, error) {
		return repository.QueryOne(ctx, tx, q, cmd.args(), scanPost)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("post created", "id", p.ID, "slug", p.Slug)
	notify.Announce(ctx, r.events, r.logger, notify.KindCreated, resource, fmt.Sprintf("Post %q created", p.Title))
	return &p, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Post, error) {
	if err := cmd.normalize(); err != nil {
		return nil, err
	}

	q := `
		UPDATE posts
		SET title = $1, slug = $2, excerpt = $3, body = $4, published = $5,
		    published_at = CASE WHEN $5 THEN COALESCE(published_at, NOW()) END,
		    updated_at = NOW()
		WHERE id = $6
		RETURNING ` + columns

	args := append((*CreateCommand)(&cmd).args(), id)

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Post, error) {
		return repository.QueryOne(ctx, tx, q, args, scanPost)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("post updated", "id", p.ID, "slug", p.Slug)
	notify.Announce(ctx, r.events, r.logger, notify.KindUpdated, resource, fmt.Sprintf("Post %q updated", p.Title))
	return &p, nil
}

func (r *repo) Delete(ctx context.Context, ids ...uuid.UUID) (int, error) {
	n, err := repository.DeleteMany(ctx, r.db, projection, "ID", ids)
	if err != nil {
		return 0, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("posts deleted", "count", n)
	notify.Announce(ctx, r.events, r.logger, notify.KindDeleted, resource, fmt.Sprintf("%d post(s) deleted", n))
	return n, nil
}
