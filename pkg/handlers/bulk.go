package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/google/uuid"

	"github.com/JaimeStill/storefront/pkg/decode"
)

// ErrNoIDs is returned when a bulk delete names no records.
var ErrNoIDs = errors.New("ids required")

// DeleteCommand is the body of a bulk delete request.
type DeleteCommand struct {
	IDs []uuid.UUID `json:"ids"`
}

// DeleteResult reports how many records a delete removed.
type DeleteResult struct {
	Deleted int `json:"deleted"`
}

// DecodeDeleteCommand reads a bulk delete body and returns its ids with
// duplicates removed.
func DecodeDeleteCommand(r *http.Request) ([]uuid.UUID, error) {
	cmd, err := decode.JSON[DeleteCommand](r.Body)
	if err != nil {
		return nil, fmt.Errorf("invalid delete command: %w", err)
	}
	if len(cmd.IDs) == 0 {
		return nil, ErrNoIDs
	}

	ids := slices.Clone(cmd.IDs)
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return slices.Compare(a[:], b[:]) })
	return slices.Compact(ids), nil
}
