// Package orders manages customer orders and their fulfilment status.
package orders

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/storefront/pkg/pagination"
)

type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Order], error)

	// Find returns the order with its items.
	Find(ctx context.Context, id uuid.UUID) (*Order, error)

	// Create prices every line from the current product price and computes
	// the order total. Unknown products are ErrInvalid.
	Create(ctx context.Context, cmd CreateCommand) (*Order, error)

	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Order, error)

	// Transition moves an order to a new status, returning ErrTransition
	// when the move is not allowed from the current status.
	Transition(ctx context.Context, id uuid.UUID, status Status) (*Order, error)

	Delete(ctx context.Context, ids ...uuid.UUID) (int, error)
}
