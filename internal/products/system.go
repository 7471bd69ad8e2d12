// Package products manages the storefront catalog.
package products

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/storefront/pkg/pagination"
)

// System defines catalog persistence.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Product], error)
	Find(ctx context.Context, id uuid.UUID) (*Product, error)

	// Create returns ErrDuplicate for a taken SKU and ErrReference when the
	// brand or category does not exist.
	Create(ctx context.Context, cmd CreateCommand) (*Product, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Product, error)

	// Delete returns ErrReference when an order line still points at one of
	// the products; reviews are removed with the product.
	Delete(ctx context.Context, ids ...uuid.UUID) (int, error)
}
