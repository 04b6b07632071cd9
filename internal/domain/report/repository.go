package report

import (
	"context"
)

// Repository defines the interface for report repository operations
type Repository interface {
	Create(ctx context.Context, r *Report) error
	ListAll(ctx context.Context) ([]*Report, error)
}
