package reports

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/storefront/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "report"),
	}
}

func (r *repo) Sales(ctx context.Context, rng Range) (*Sales, error) {
	const q = `
		SELECT (created_at AT TIME ZONE 'UTC')::date AS day, COUNT(*), COALESCE(SUM(total_cents), 0)
		FROM orders
		WHERE status <> 'cancelled' AND created_at >= $1 AND created_at < $2
		GROUP BY day
		ORDER BY day`

	end := rng.To.AddDate(0, 0, 1)

	days, err := repository.QueryMany(ctx, r.db, q, []any{rng.From, end}, scanDay)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}

	rows := make(map[string]DailySales, len(days))
	for _, d := range days {
		rows[d.Date] = d
	}

	r.logger.Debug("sales report", "from", rng.From, "to", rng.To, "active_days", len(days))
	return newSales(rng, rows), nil
}

func scanDay(s repository.Scanner) (DailySales, error) {
	var (
		day time.Time
		d   DailySales
	)
	if err := s.Scan(&day, &d.Orders, &d.RevenueCents); err != nil {
		return d, err
	}
	d.Date = day.Format(dateLayout)
	return d, nil
}
