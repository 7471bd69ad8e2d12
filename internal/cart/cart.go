// Package cart holds the shopper's cart and wishlist as an explicit store.
// State changes only through Reduce, which is pure; the Store serialises
// dispatch, persists each new state and notifies subscribers.
package cart

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

var ErrInvalid = errors.New("invalid cart action")

// Line is one product in the cart. Name and UnitPriceCents are captured
// when the product is added.
type Line struct {
	ProductID      uuid.UUID
	Name           string
	UnitPriceCents int64
	Quantity       int
}

func (l Line) SubtotalCents() int64 {
	return l.UnitPriceCents * int64(l.Quantity)
}

type State struct {
	Cart     []Line
	Wishlist []uuid.UUID
}

// TotalCents sums every cart line.
func (s State) TotalCents() int64 {
	var total int64
	for _, l := range s.Cart {
		total += l.SubtotalCents()
	}
	return total
}

// Items counts units across all lines.
func (s State) Items() int {
	n := 0
	for _, l := range s.Cart {
		n += l.Quantity
	}
	return n
}

func (s State) Wished(id uuid.UUID) bool {
	return slices.Contains(s.Wishlist, id)
}

func (s State) line(id uuid.UUID) int {
	return slices.IndexFunc(s.Cart, func(l Line) bool { return l.ProductID == id })
}

func (s State) clone() State {
	return State{
		Cart:     slices.Clone(s.Cart),
		Wishlist: slices.Clone(s.Wishlist),
	}
}

// Action is a state change request.
type Action interface {
	action()
}

// AddItem adds Quantity units, merging with an existing line. Name and
// price refresh when given.
type AddItem struct {
	ProductID      uuid.UUID
	Name           string
	UnitPriceCents int64
	Quantity       int
}

type RemoveItem struct {
	ProductID uuid.UUID
}

// SetQuantity replaces a line's quantity. A quantity of zero or less removes
// the line.
type SetQuantity struct {
	ProductID uuid.UUID
	Quantity  int
}

type ClearCart struct{}

type ToggleWishlist struct {
	ProductID uuid.UUID
}

func (AddItem) action()        {}
func (RemoveItem) action()     {}
func (SetQuantity) action()    {}
func (ClearCart) action()      {}
func (ToggleWishlist) action() {}

// Reduce returns the state that results from applying a to s. s is never
// modified.
func Reduce(s State, a Action) (State, error) {
	next := s.clone()

	switch a := a.(type) {
	case AddItem:
		if a.ProductID == uuid.Nil {
			return s, fmt.Errorf("%w: product id required", ErrInvalid)
		}
		if a.Quantity < 1 {
			return s, fmt.Errorf("%w: quantity must be at least 1", ErrInvalid)
		}
		if a.UnitPriceCents < 0 {
			return s, fmt.Errorf("%w: negative price", ErrInvalid)
		}

		if i := next.line(a.ProductID); i >= 0 {
			next.Cart[i].Quantity += a.Quantity
			if a.Name != "" {
				next.Cart[i].Name = a.Name
			}
			if a.UnitPriceCents > 0 {
				next.Cart[i].UnitPriceCents = a.UnitPriceCents
			}
			return next, nil
		}

		next.Cart = append(next.Cart, Line{
			ProductID:      a.ProductID,
			Name:           a.Name,
			UnitPriceCents: a.UnitPriceCents,
			Quantity:       a.Quantity,
		})

	case RemoveItem:
		next.Cart = slices.DeleteFunc(next.Cart, func(l Line) bool { return l.ProductID == a.ProductID })

	case SetQuantity:
		i := next.line(a.ProductID)
		if i < 0 {
			if a.Quantity <= 0 {
				return next, nil
			}
			return s, fmt.Errorf("%w: product %s is not in the cart", ErrInvalid, a.ProductID)
		}
		if a.Quantity <= 0 {
			next.Cart = slices.Delete(next.Cart, i, i+1)
			return next, nil
		}
		next.Cart[i].Quantity = a.Quantity

	case ClearCart:
		next.Cart = nil

	case ToggleWishlist:
		if a.ProductID == uuid.Nil {
			return s, fmt.Errorf("%w: product id required", ErrInvalid)
		}
		if i := slices.Index(next.Wishlist, a.ProductID); i >= 0 {
			next.Wishlist = slices.Delete(next.Wishlist, i, i+1)
		} else {
			next.Wishlist = append(next.Wishlist, a.ProductID)
		}

	default:
		return s, fmt.Errorf("%w: %T", ErrInvalid, a)
	}

	return next, nil
}
