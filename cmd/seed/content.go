package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

func init() {
	registerSeeder(&ContentSeeder{})
}

type ContentSeedData struct {
	Posts []struct {
		Title     string `json:"title"`
		Slug      string `json:"slug"`
		Excerpt   string `json:"excerpt"`
		Body      string `json:"body"`
		Published bool   `json:"published"`
	} `json:"posts"`
}

// ContentSeeder implements Seeder for blog posts.
type ContentSeeder struct {
	file string
}

func (s *ContentSeeder) Name() string {
	return "content"
}

func (s *ContentSeeder) Description() string {
	return "Seeds blog posts"
}

func (s *ContentSeeder) SetFile(path string) {
	s.file = path
}

func (s *ContentSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	content, err := readSeedFile(s.file, "seeds/content.json")
	if err != nil {
		return err
	}

	var data ContentSeedData
	if err := json.Unmarshal(content, &data); err != nil {
		return fmt.Errorf("parse seed data: %w", err)
	}

	const query = `
		INSERT INTO posts (title, slug, excerpt, body, published, published_at)
		VALUES ($1, $2, $3, $4, $5, CASE WHEN $5 THEN NOW() END)
		ON CONFLICT (slug) DO UPDATE SET
			title = EXCLUDED.title,
			excerpt = EXCLUDED.excerpt,
			body = EXCLUDED.body,
			published = EXCLUDED.published,
			published_at = CASE WHEN EXCLUDED.published THEN COALESCE(posts.published_at, NOW()) END,
			updated_at = NOW()`

	for _, p := range data.Posts {
		if _, err := tx.ExecContext(ctx, query, p.Title, p.Slug, p.Excerpt, p.Body, p.Published); err != nil {
			return fmt.Errorf("save post %s: %w", p.Slug, err)
		}
	}
	return nil
}
