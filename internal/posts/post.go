package posts

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/storefront/internal/categories"
)

// Post is a blog article. PublishedAt is set the first time the post is
// published and cleared when it is withdrawn.
type Post struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Body        string     `json:"body"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type CreateCommand struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Excerpt   string `json:"excerpt"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
}

type UpdateCommand CreateCommand

const maxExcerpt = 280

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func (c *CreateCommand) normalize() error {
	c.Title = strings.TrimSpace(c.Title)
	c.Slug = strings.TrimSpace(c.Slug)
	c.Excerpt = strings.TrimSpace(c.Excerpt)

	if c.Title == "" {
		return fmt.Errorf("%w: title required", ErrInvalid)
	}
	if c.Slug == "" {
		c.Slug = categories.Slugify(c.Title)
	}
	if !slugPattern.MatchString(c.Slug) {
		return fmt.Errorf("%w: slug %q must be lowercase words joined by hyphens", ErrInvalid, c.Slug)
	}
	if len([]rune(c.Excerpt)) > maxExcerpt {
		return fmt.Errorf("%w: excerpt longer than %d characters", ErrInvalid, maxExcerpt)
	}
	if c.Published && strings.TrimSpace(c.Body) == "" {
		return fmt.Errorf("%w: published posts need a body", ErrInvalid)
	}
	return nil
}

func (c *CreateCommand) args() []any {
	return []any{c.Title, c.Slug, c.Excerpt, c.Body, c.Published}
}

func (c *UpdateCommand) normalize() error {
	return (*CreateCommand)(c).normalize()
}
