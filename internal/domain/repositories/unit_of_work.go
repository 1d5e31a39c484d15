package repositories

import (
	"context"
)

// UnitOfWork defines the interface for atomic operations. Repository calls
// made with the context passed to fn run inside one transaction; either all
// of them commit or none do.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
