package brands

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Brand is a product manufacturer or label.
type Brand struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateCommand contains the data required to create a brand.
type CreateCommand struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateCommand replaces the editable fields of a brand.
type UpdateCommand struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (c *CreateCommand) normalize() error {
	return normalize(&c.Name, &c.Description)
}

func (c *UpdateCommand) normalize() error {
	return normalize(&c.Name, &c.Description)
}

func normalize(name, description *string) error {
	*name = strings.TrimSpace(*name)
	*description = strings.TrimSpace(*description)
	if *name == "" {
		return fmt.Errorf("%w: name required", ErrInvalid)
	}
	return nil
}
