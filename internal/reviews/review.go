package reviews

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Body      string    `json:"body"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateCommand submits a review. New reviews await approval.
type CreateCommand struct {
	ProductID uuid.UUID `json:"productId"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Body      string    `json:"body"`
}

type UpdateCommand struct {
	Author   string `json:"author"`
	Rating   int    `json:"rating"`
	Body     string `json:"body"`
	Approved bool   `json:"approved"`
}

type ApprovalCommand struct {
	Approved bool `json:"approved"`
}

func (c *CreateCommand) normalize() error {
	if c.ProductID == uuid.Nil {
		return fmt.Errorf("%w: product required", ErrInvalid)
	}
	return normalize(&c.Author, &c.Body, c.Rating)
}

func (c *UpdateCommand) normalize() error {
	return normalize(&c.Author, &c.Body, c.Rating)
}

func normalize(author, body *string, rating int) error {
	*author = strings.TrimSpace(*author)
	*body = strings.TrimSpace(*body)

	if *author == "" {
		return fmt.Errorf("%w: author required", ErrInvalid)
	}
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalid, MinRating, MaxRating)
	}
	return nil
}
