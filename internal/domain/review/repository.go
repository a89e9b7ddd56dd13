package review

import (
	"context"

	"github.com/google/uuid"
)

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	Save(ctx context.Context, r *Review) error
	Update(ctx context.Context, r *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	FindByLodgeID(ctx context.Context, lodgeID uuid.UUID) ([]*Review, error)
}
