// Package reviews manages customer product reviews and their moderation.
package reviews

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/storefront/pkg/pagination"
)

type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Review], error)
	Find(ctx context.Context, id uuid.UUID) (*Review, error)
	Create(ctx context.Context, cmd CreateCommand) (*Review, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Review, error)
	SetApproved(ctx context.Context, id uuid.UUID, approved bool) (*Review, error)
	Delete(ctx context.Context, ids ...uuid.UUID) (int, error)
}
