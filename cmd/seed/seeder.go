// Command seed populates the storefront database from embedded or external
// JSON files. Seeders run inside one transaction and upsert on natural keys,
// so running them twice leaves the same data.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"github.com/JaimeStill/storefront/pkg/repository"
)

type Seeder interface {
	Name() string
	Description() string
	Seed(ctx context.Context, tx *sql.Tx) error
}

// fileSeeder reads its data from path instead of the embedded default.
type fileSeeder interface {
	SetFile(path string)
}

var seeders = map[string]Seeder{}

// registerSeeder is called from init in each seeder file.
func registerSeeder(s Seeder) {
	seeders[s.Name()] = s
}

func getSeeder(name string) (Seeder, bool) {
	s, ok := seeders[name]
	return s, ok
}

// listSeeders returns the registered seeders ordered by name. Catalog data
// sorts before content, which matches their dependency order.
func listSeeders() []Seeder {
	result := make([]Seeder, 0, len(seeders))
	for _, s := range seeders {
		result = append(result, s)
	}
	slices.SortFunc(result, func(a, b Seeder) int { return strings.Compare(a.Name(), b.Name()) })
	return result
}

func runSeeder(ctx context.Context, db *sql.DB, name string) error {
	s, ok := getSeeder(name)
	if !ok {
		return fmt.Errorf("seeder not found: %s", name)
	}
	return seedAll(ctx, db, []Seeder{s})
}

// runAllSeeders rolls everything back if any seeder fails.
func runAllSeeders(ctx context.Context, db *sql.DB) error {
	return seedAll(ctx, db, listSeeders())
}

func seedAll(ctx context.Context, db *sql.DB, list []Seeder) error {
	_, err := repository.WithTx(ctx, db, func(tx *sql.Tx) (struct{}, error) {
		for _, s := range list {
			if err := s.Seed(ctx, tx); err != nil {
				return struct{}{}, fmt.Errorf("seed %s: %w", s.Name(), err)
			}
		}
		return struct{}{}, nil
	})
	return err
}
