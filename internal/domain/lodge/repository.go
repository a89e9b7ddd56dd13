package lodge

import (
	"context"

	"github.com/google/uuid"
)

// LodgeRepository defines persistence operations for lodges.
type LodgeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Lodge, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Lodge, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*Lodge, error)
	List(ctx context.Context, page, limit int) ([]*Lodge, int64, error)
	Save(ctx context.Context, l *Lodge) error
	Update(ctx context.Context, l *Lodge) error
	Delete(ctx context.Context, id uuid.UUID) error
}
