// Package categories manages the catalog's product categories.
package categories

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/storefront/pkg/pagination"
)

type System interface {
	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Category], error)
	Find(ctx context.Context, id uuid.UUID) (*Category, error)
	Create(ctx context.Context, cmd CreateCommand) (*Category, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Category, error)
	Delete(ctx context.Context, ids ...uuid.UUID) (int, error)
}
