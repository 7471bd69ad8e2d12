package products

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the catalog visibility of a product.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusArchived:
		return true
	}
	return false
}

// Product is a sellable catalog item. Prices are in cents.
type Product struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	SKU         string     `json:"sku"`
	Description string     `json:"description"`
	PriceCents  int64      `json:"priceCents"`
	Stock       int        `json:"stock"`
	Status      Status     `json:"status"`
	ImageURL    string     `json:"imageUrl"`
	BrandID     *uuid.UUID `json:"brandId"`
	CategoryID  *uuid.UUID `json:"categoryId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreateCommand creates a product. An empty Status means draft.
type CreateCommand struct {
	Name        string     `json:"name"`
	SKU         string     `json:"sku"`
	Description string     `json:"description"`
	PriceCents  int64      `json:"priceCents"`
	Stock       int        `json:"stock"`
	Status      Status     `json:"status"`
	ImageURL    string     `json:"imageUrl"`
	BrandID     *uuid.UUID `json:"brandId"`
	CategoryID  *uuid.UUID `json:"categoryId"`
}

// UpdateCommand replaces every editable field of a product.
type UpdateCommand CreateCommand

func (c *CreateCommand) normalize() error {
	c.Name = strings.TrimSpace(c.Name)
	c.SKU = strings.ToUpper(strings.TrimSpace(c.SKU))
	c.Description = strings.TrimSpace(c.Description)
	c.ImageURL = strings.TrimSpace(c.ImageURL)
	if c.Status == "" {
		c.Status = StatusDraft
	}

	switch {
	case c.Name == "":
		return fmt.Errorf("%w: name required", ErrInvalid)
	case c.SKU == "":
		return fmt.Errorf("%w: sku required", ErrInvalid)
	case c.PriceCents < 0:
		return fmt.Errorf("%w: price must not be negative", ErrInvalid)
	case c.Stock < 0:
		return fmt.Errorf("%w: stock must not be negative", ErrInvalid)
	case !c.Status.Valid():
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, c.Status)
	}

	if c.ImageURL != "" {
		u, err := url.Parse(c.ImageURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: image url must be an absolute http(s) url", ErrInvalid)
		}
	}
	return nil
}

func (c *UpdateCommand) normalize() error {
	return (*CreateCommand)(c).normalize()
}

func (c *CreateCommand) args() []any {
	return []any{c.Name, c.SKU, c.Description, c.PriceCents, c.Stock, string(c.Status), c.ImageURL, c.BrandID, c.CategoryID}
}
