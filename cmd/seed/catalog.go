package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

func init() {
	registerSeeder(&CatalogSeeder{})
}

// CatalogSeedData represents the JSON structure for catalog seed files.
// Products reference brands by name and categories by slug.
type CatalogSeedData struct {
	Brands []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"brands"`
	Categories []struct {
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
	} `json:"categories"`
	Products []struct {
		Name        string `json:"name"`
		SKU         string `json:"sku"`
		Description string `json:"description"`
		PriceCents  int64  `json:"priceCents"`
		Stock       int    `json:"stock"`
		Status      string `json:"status"`
		Brand       string `json:"brand"`
		Category    string `json:"category"`
	} `json:"products"`
}

// CatalogSeeder implements Seeder for brands, categories and products.
type CatalogSeeder struct {
	file string
}

func (s *CatalogSeeder) Name() string {
	return "catalog"
}

func (s *CatalogSeeder) Description() string {
	return "Seeds brands, categories and products"
}

// SetFile configures an external seed file path, overriding the embedded default.
func (s *CatalogSeeder) SetFile(path string) {
	s.file = path
}

// Seed upserts every record on its natural key, so it can run repeatedly.
func (s *CatalogSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	content, err := readSeedFile(s.file, "seeds/catalog.json")
	if err != nil {
		return err
	}

	var data CatalogSeedData
	if err := json.Unmarshal(content, &data); err != nil {
		return fmt.Errorf("parse seed data: %w", err)
	}

	brandIDs := make(map[string]uuid.UUID, len(data.Brands))
	for _, b := range data.Brands {
		const query = `
			INSERT INTO brands (name, description)
			VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET
				description = EXCLUDED.description,
				updated_at = NOW()
			RETURNING id`

		var id uuid.UUID
		if err := tx.QueryRowContext(ctx, query, b.Name, b.Description).Scan(&id); err != nil {
			return fmt.Errorf("save brand %s: %w", b.Name, err)
		}
		brandIDs[b.Name] = id
	}

	categoryIDs := make(map[string]uuid.UUID, len(data.Categories))
	for _, c := range data.Categories {
		const query = `
			INSERT INTO categories (name, slug, description)
			VALUES ($1, $2, $3)
			ON CONFLICT (slug) DO UPDATE SET
				name = EXCLUDED.name,
				description = EXCLUDED.description,
				updated_at = NOW()
			RETURNING id`

		var id uuid.UUID
		if err := tx.QueryRowContext(ctx, query, c.Name, c.Slug, c.Description).Scan(&id); err != nil {
			return fmt.Errorf("save category %s: %w", c.Slug, err)
		}
		categoryIDs[c.Slug] = id
	}

	for _, p := range data.Products {
		const query = `
			INSERT INTO products (name, sku, description, price_cents, stock, status, brand_id, category_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (sku) DO UPDATE SET
				name = EXCLUDED.name,
				description = EXCLUDED.description,
				price_cents = EXCLUDED.price_cents,
				stock = EXCLUDED.stock,
				status = EXCLUDED.status,
				brand_id = EXCLUDED.brand_id,
				category_id = EXCLUDED.category_id,
				updated_at = NOW()`

		brandID, err := lookup(brandIDs, p.Brand, "brand")
		if err != nil {
			return fmt.Errorf("product %s: %w", p.SKU, err)
		}
		categoryID, err := lookup(categoryIDs, p.Category, "category")
		if err != nil {
			return fmt.Errorf("product %s: %w", p.SKU, err)
		}

		if _, err := tx.ExecContext(ctx, query, p.Name, p.SKU, p.Description, p.PriceCents, p.Stock, p.Status, brandID, categoryID); err != nil {
			return fmt.Errorf("save product %s: %w", p.SKU, err)
		}
	}

	return nil
}

// lookup resolves a seed reference. An empty reference is a NULL foreign key.
func lookup(ids map[string]uuid.UUID, ref, kind string) (*uuid.UUID, error) {
	if ref == "" {
		return nil, nil
	}
	id, ok := ids[ref]
	if !ok {
		return nil, fmt.Errorf("unknown %s %q", kind, ref)
	}
	return &id, nil
}
