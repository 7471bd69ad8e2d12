package brands

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

const resource = "brands"

type repo struct {
	db         *sql.DB
	events     notify.Publisher
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates the brands System backed by db. Mutations are announced on events.
func New(db *sql.DB, events notify.Publisher, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		events:     events,
		logger:     logger.With("system", "brand"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Brand], error) {
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
		return nil, fmt.Errorf("count brands: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.PageIndex, page.PageSize)
	brands, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanBrand)
	if err != nil {
		return nil, fmt.Errorf("query brands: %w", err)
	}

	result := pagination.NewPageResult(brands, total, page.PageIndex, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Brand, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	b, err := repository.QueryOne(ctx, r.db, q, args, scanBrand)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &b, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Brand, error) {
	if err := cmd.normalize(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO brands (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description, created_at, updated_at`

	b, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Brand, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.Name, cmd.Description}, scanBrand)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("brand created", "id", b.ID, "name", b.Name)
	notify.Announce(ctx, r.events, r.logger, notify.KindCreated, resource, fmt.Sprintf("Brand %q created", b.Name))
	return &b, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Brand, error) {
	if err := cmd.normalize(); err != nil {
		return nil, err
	}

	q := `
		UPDATE brands
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, name, description, created_at, updated_at`

	b, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Brand, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.Name, cmd.Description, id}, scanBrand)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("brand updated", "id", b.ID, "name", b.Name)
	notify.Announce(ctx, r.events, r.logger, notify.KindUpdated, resource, fmt.Sprintf("Brand %q updated", b.Name))
	return &b, nil
}

func (r *repo) Delete(ctx context.Context, ids ...uuid.UUID) (int, error) {
	n, err := repository.DeleteMany(ctx, r.db, projection, "ID", ids)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return 0, ErrInUse
		}
		return 0, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("brands deleted", "count", n)
	notify.Announce(ctx, r.events, r.logger, notify.KindDeleted, resource, fmt.Sprintf("%d brand(s) deleted", n))
	return n, nil
}
