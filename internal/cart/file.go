package cart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	toml "github.com/pelletier/go-toml/v2"
)

// DefaultPath is where the storefront CLI keeps its cart.
const DefaultPath = "~/.config/storefront/cart.toml"

// FilePersister stores cart state as TOML.
type FilePersister struct {
	Path string
}

type fileLine struct {
	ProductID      string `toml:"product_id"`
	Name           string `toml:"name"`
	UnitPriceCents int64  `toml:"unit_price_cents"`
	Quantity       int    `toml:"quantity"`
}

type fileState struct {
	Cart     []fileLine `toml:"cart"`
	Wishlist []string   `toml:"wishlist"`
}

// Load reads the file. A missing file is an empty state.
func (p FilePersister) Load() (State, error) {
	path, err := expandPath(p.Path)
	if err != nil {
		return State{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("read cart file: %w", err)
	}

	var fs fileState
	if err := toml.Unmarshal(data, &fs); err != nil {
		return State{}, fmt.Errorf("parse cart file: %w", err)
	}

	var s State
	for _, l := range fs.Cart {
		id, err := uuid.Parse(l.ProductID)
		if err != nil {
			return State{}, fmt.Errorf("parse cart file: product id %q: %w", l.ProductID, err)
		}
		if l.Quantity < 1 {
			continue
		}
		s.Cart = append(s.Cart, Line{ProductID: id, Name: l.Name, UnitPriceCents: l.UnitPriceCents, Quantity: l.Quantity})
	}
	for _, raw := range fs.Wishlist {
		id, err := uuid.Parse(raw)
		if err != nil {
			return State{}, fmt.Errorf("parse cart file: wishlist id %q: %w", raw, err)
		}
		s.Wishlist = append(s.Wishlist, id)
	}
	return s, nil
}

// Save writes the state through a temporary file in the same directory.
func (p FilePersister) Save(s State) error {
	path, err := expandPath(p.Path)
	if err != nil {
		return err
	}

	fs := fileState{}
	for _, l := range s.Cart {
		fs.Cart = append(fs.Cart, fileLine{
			ProductID:      l.ProductID.String(),
			Name:           l.Name,
			UnitPriceCents: l.UnitPriceCents,
			Quantity:       l.Quantity,
		})
	}
	for _, id := range s.Wishlist {
		fs.Wishlist = append(fs.Wishlist, id.String())
	}

	data, err := toml.Marshal(fs)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cart dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".cart-*.toml")
	if err != nil {
		return fmt.Errorf("write cart: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write cart: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write cart: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write cart: %w", err)
	}
	return nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		trimmed = DefaultPath
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
