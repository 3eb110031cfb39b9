package repositories

import (
	"context"
)

// UnitOfWork executes a function within a single database transaction.
// Every repository call made with the context passed to fn joins that
// transaction; an error from fn rolls everything back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
