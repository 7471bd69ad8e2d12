package categories

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateCommand creates a category. An empty Slug is derived from Name.
type CreateCommand struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type UpdateCommand struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and joins its alphanumeric runs with hyphens.
func Slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

func (c *CreateCommand) normalize() error {
	return normalize(&c.Name, &c.Slug, &c.Description)
}

func (c *UpdateCommand) normalize() error {
	return normalize(&c.Name, &c.Slug, &c.Description)
}

func normalize(name, slug, description *string) error {
	*name = strings.TrimSpace(*name)
	*slug = strings.TrimSpace(*slug)
	*description = strings.TrimSpace(*description)

	if *name == "" {
		return fmt.Errorf("%w: name required", ErrInvalid)
	}
	if *slug == "" {
		*slug = Slugify(*name)
	}
	if !slugPattern.MatchString(*slug) {
		return fmt.Errorf("%w: slug %q must be lowercase words joined by hyphens", ErrInvalid, *slug)
	}
	return nil
}
