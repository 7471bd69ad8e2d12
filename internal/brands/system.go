// Package brands manages the brands that products are sold under.
package brands

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/storefront/pkg/pagination"
)

// System defines brand persistence.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Brand], error)

	// Find returns ErrNotFound if the brand does not exist.
	Find(ctx context.Context, id uuid.UUID) (*Brand, error)

	// Create returns ErrDuplicate if the name is taken.
	Create(ctx context.Context, cmd CreateCommand) (*Brand, error)

	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Brand, error)

	// Delete removes every brand in ids or none of them. It returns
	// ErrNotFound when any id is unknown and ErrInUse when a product still
	// references one of the brands.
	Delete(ctx context.Context, ids ...uuid.UUID) (int, error)
}
