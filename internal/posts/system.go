// Package posts manages storefront blog posts.
package posts

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/storefront/pkg/pagination"
)

type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Post], error)
	Find(ctx context.Context, id uuid.UUID) (*Post, error)
	Create(ctx context.Context, cmd CreateCommand) (*Post, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Post, error)
	Delete(ctx context.Context, ids ...uuid.UUID) (int, error)
}
