// Package reports aggregates order data for the admin dashboard.
package reports

import "context"

type System interface {
	// Sales returns daily order counts and revenue for r, excluding
	// cancelled orders.
	Sales(ctx context.Context, r Range) (*Sales, error)
}
