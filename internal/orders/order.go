package orders

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the fulfilment state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending: {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusShipped, StatusCancelled},
	StatusShipped: {StatusDelivered},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order in status s may move to next.
// Delivered and cancelled orders are final.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is a customer purchase. Items are populated by Find only.
type Order struct {
	ID            uuid.UUID `json:"id"`
	Number        string    `json:"number"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	Status        Status    `json:"status"`
	TotalCents    int64     `json:"totalCents"`
	Items         []Item    `json:"items,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Item is one order line. UnitPriceCents is captured from the product at
// order time.
type Item struct {
	ProductID      uuid.UUID `json:"productId"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
}

type ItemCommand struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

type CreateCommand struct {
	CustomerName  string        `json:"customerName"`
	CustomerEmail string        `json:"customerEmail"`
	Items         []ItemCommand `json:"items"`
}

// UpdateCommand edits customer details. Status changes go through Transition.
type UpdateCommand struct {
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
}

type TransitionCommand struct {
	Status Status `json:"status"`
}

func normalizeCustomer(name, email *string) error {
	*name = strings.TrimSpace(*name)
	*email = strings.ToLower(strings.TrimSpace(*email))

	if *name == "" {
		return fmt.Errorf("%w: customer name required", ErrInvalid)
	}
	if _, err := mail.ParseAddress(*email); err != nil {
		return fmt.Errorf("%w: invalid customer email %q", ErrInvalid, *email)
	}
	return nil
}

func (c *CreateCommand) normalize() error {
	if err := normalizeCustomer(&c.CustomerName, &c.CustomerEmail); err != nil {
		return err
	}
	if len(c.Items) == 0 {
		return fmt.Errorf("%w: at least one item required", ErrInvalid)
	}

	merged := make([]ItemCommand, 0, len(c.Items))
	index := make(map[uuid.UUID]int, len(c.Items))
	for _, item := range c.Items {
		if item.Quantity < 1 {
			return fmt.Errorf("%w: quantity for product %s must be positive", ErrInvalid, item.ProductID)
		}
		if i, ok := index[item.ProductID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	c.Items = merged
	return nil
}

func (c *UpdateCommand) normalize() error {
	return normalizeCustomer(&c.CustomerName, &c.CustomerEmail)
}

// numberAttempts bounds how many fresh numbers Create tries when a number is
// already taken.
const numberAttempts = 3

// NewNumber returns a human-readable order number for t: the UTC date and
// ten random hex digits.
func NewNumber(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
	return fmt.Sprintf("SO-%s-%s", t.UTC().Format("20060102"), suffix)
}
